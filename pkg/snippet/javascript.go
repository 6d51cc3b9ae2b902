package snippet

func jsXHR(s *Snippet) string {
	b := newCodeBuilder("  ")
	if s.hasBody() {
		b.push(0, "const data = %s;", jsBody(s))
	} else {
		b.push(0, "const data = null;")
	}
	b.blank()
	b.push(0, "const xhr = new XMLHttpRequest();")
	b.push(0, "xhr.withCredentials = true;")
	b.blank()
	b.push(0, "xhr.addEventListener(\"readystatechange\", function () {")
	b.push(1, "if (this.readyState === this.DONE) {")
	b.push(2, "console.log(this.responseText);")
	b.push(1, "}")
	b.push(0, "});")
	b.blank()
	b.push(0, "xhr.open(%s, %s);", jsonString(s.method), jsonString(s.fullURL()))
	for _, h := range s.headers {
		b.push(0, "xhr.setRequestHeader(%s, %s);", jsonString(h.Name), jsonString(h.Value))
	}
	b.blank()
	b.push(0, "xhr.send(data);")

	return b.String()
}

func jsJQuery(s *Snippet) string {
	b := newCodeBuilder("  ")
	fields := []string{
		"\"async\": true",
		"\"crossDomain\": true",
		"\"url\": " + jsonString(s.fullURL()),
		"\"method\": " + jsonString(s.method),
	}
	if len(s.headers) > 0 {
		fields = append(fields, "\"headers\": "+inlineObject(s.headers, ": ", jsonString))
	}
	switch {
	case s.isForm():
		fields = append(fields, "\"data\": "+inlineParams(s.params))
	case s.hasBody():
		fields = append(fields, "\"processData\": false", "\"data\": "+jsBody(s))
	}

	b.push(0, "const settings = {")
	for i, f := range fields {
		if i < len(fields)-1 {
			f += ","
		}
		b.push(1, "%s", f)
	}
	b.push(0, "};")
	b.blank()
	b.push(0, "$.ajax(settings).done(function (response) {")
	b.push(1, "console.log(response);")
	b.push(0, "});")

	return b.String()
}

func jsFetch(s *Snippet) string {
	b := newCodeBuilder("  ")
	b.push(0, "const options = %s;", fetchOptions(s))
	b.blank()
	b.push(0, "fetch(%s, options)", jsonString(s.fullURL()))
	b.push(1, ".then(response => response.json())")
	b.push(1, ".then(response => console.log(response))")
	b.push(1, ".catch(err => console.error(err));")

	return b.String()
}

package snippet

func phpCurl(s *Snippet) string {
	b := newCodeBuilder("  ")
	b.push(0, "<?php")
	b.blank()
	b.push(0, "$curl = curl_init();")
	b.blank()
	b.push(0, "curl_setopt_array($curl, [")
	b.push(1, "CURLOPT_URL => %s,", phpString(s.fullURL()))
	b.push(1, "CURLOPT_RETURNTRANSFER => true,")
	b.push(1, "CURLOPT_ENCODING => '',")
	b.push(1, "CURLOPT_MAXREDIRS => 10,")
	b.push(1, "CURLOPT_TIMEOUT => 30,")
	if s.httpVersion == "HTTP/1.0" {
		b.push(1, "CURLOPT_HTTP_VERSION => CURL_HTTP_VERSION_1_0,")
	} else {
		b.push(1, "CURLOPT_HTTP_VERSION => CURL_HTTP_VERSION_1_1,")
	}
	b.push(1, "CURLOPT_CUSTOMREQUEST => %s,", phpString(s.method))
	if s.hasBody() {
		b.push(1, "CURLOPT_POSTFIELDS => %s,", phpString(s.body))
	}
	if len(s.headers) > 0 {
		b.push(1, "CURLOPT_HTTPHEADER => [")
		for i, h := range s.headers {
			line := phpString(h.Name + ": " + h.Value)
			if i < len(s.headers)-1 {
				line += ","
			}
			b.push(2, "%s", line)
		}
		b.push(1, "],")
	}
	b.push(0, "]);")
	b.blank()
	b.push(0, "$response = curl_exec($curl);")
	b.push(0, "$err = curl_error($curl);")
	b.blank()
	b.push(0, "curl_close($curl);")
	b.blank()
	b.push(0, "if ($err) {")
	b.push(1, "echo 'cURL Error #:' . $err;")
	b.push(0, "} else {")
	b.push(1, "echo $response;")
	b.push(0, "}")

	return b.String()
}

package snippet

import "fmt"

// Target describes a code generation backend.
type Target struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Extname string   `json:"extname"`
	Default string   `json:"default,omitempty"`
	Clients []Client `json:"clients,omitempty"`
}

// Client is a variant of a target, typically a specific HTTP library.
type Client struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

type generator func(s *Snippet) string

type targetDef struct {
	target   Target
	generate generator            // targets without clients
	clients  map[string]generator // targets with clients
}

func (d targetDef) generatorFor(client string) (generator, error) {
	if d.clients == nil {
		return d.generate, nil
	}
	if client == "" {
		client = d.target.Default
	}
	gen, ok := d.clients[client]
	if !ok {
		return nil, fmt.Errorf("unknown client %q for target %q", client, d.target.Key)
	}
	return gen, nil
}

var targets = []targetDef{
	{
		target: Target{
			Key: "shell", Title: "Shell", Extname: ".sh", Default: "curl",
			Clients: []Client{
				{Key: "curl", Title: "cURL", Link: "http://curl.haxx.se/", Description: "cURL is a command line tool and library for transferring data with URL syntax"},
				{Key: "httpie", Title: "HTTPie", Link: "http://httpie.org/", Description: "a CLI, cURL-like tool for humans"},
				{Key: "wget", Title: "Wget", Link: "https://www.gnu.org/software/wget/", Description: "a free software package for retrieving files using HTTP, HTTPS"},
			},
		},
		clients: map[string]generator{"curl": shellCurl, "httpie": shellHTTPie, "wget": shellWget},
	},
	{
		target: Target{
			Key: "node", Title: "Node.js", Extname: ".js", Default: "native",
			Clients: []Client{
				{Key: "native", Title: "HTTP", Link: "http://nodejs.org/api/http.html#http_http_request_options_callback", Description: "Node.js native HTTP interface"},
				{Key: "request", Title: "Request", Link: "https://github.com/request/request", Description: "Simplified HTTP request client"},
				{Key: "unirest", Title: "Unirest", Link: "http://unirest.io/nodejs.html", Description: "Lightweight HTTP Request Client Library"},
				{Key: "fetch", Title: "Fetch", Link: "https://github.com/bitinn/node-fetch", Description: "Simplified HTTP node-fetch client"},
			},
		},
		clients: map[string]generator{"native": nodeNative, "request": nodeRequest, "unirest": nodeUnirest, "fetch": nodeFetch},
	},
	{
		target: Target{
			Key: "javascript", Title: "JavaScript", Extname: ".js", Default: "xhr",
			Clients: []Client{
				{Key: "xhr", Title: "XMLHttpRequest", Link: "https://developer.mozilla.org/en-US/docs/Web/API/XMLHttpRequest", Description: "W3C Standard API that provides scripted client functionality"},
				{Key: "jquery", Title: "jQuery", Link: "http://api.jquery.com/jquery.ajax/", Description: "Perform an asynchronous HTTP (Ajax) requests with jQuery"},
				{Key: "fetch", Title: "fetch", Link: "https://developer.mozilla.org/en-US/docs/Web/API/Fetch_API/Using_Fetch", Description: "Perform asynchronous HTTP requests with the Fetch API"},
			},
		},
		clients: map[string]generator{"xhr": jsXHR, "jquery": jsJQuery, "fetch": jsFetch},
	},
	{
		target: Target{
			Key: "python", Title: "Python", Extname: ".py", Default: "python3",
			Clients: []Client{
				{Key: "python3", Title: "http.client", Link: "https://docs.python.org/3/library/http.client.html", Description: "Python3 HTTP Client"},
				{Key: "requests", Title: "Requests", Link: "http://docs.python-requests.org/en/latest/api/#requests.request", Description: "Requests HTTP library"},
			},
		},
		clients: map[string]generator{"python3": pythonHTTPClient, "requests": pythonRequests},
	},
	{
		target: Target{
			Key: "ruby", Title: "Ruby", Extname: ".rb", Default: "native",
			Clients: []Client{
				{Key: "native", Title: "net::http", Link: "http://ruby-doc.org/stdlib-2.2.1/libdoc/net/http/rdoc/Net/HTTP.html", Description: "Ruby HTTP client"},
			},
		},
		clients: map[string]generator{"native": rubyNative},
	},
	{
		target: Target{
			Key: "php", Title: "PHP", Extname: ".php", Default: "curl",
			Clients: []Client{
				{Key: "curl", Title: "cURL", Link: "http://php.net/manual/en/book.curl.php", Description: "PHP with ext-curl"},
			},
		},
		clients: map[string]generator{"curl": phpCurl},
	},
	{
		target:   Target{Key: "go", Title: "Go", Extname: ".go"},
		generate: goNative,
	},
	{
		target:   Target{Key: "http", Title: "HTTP", Extname: ""},
		generate: rawHTTP,
	},
}

// AvailableTargets lists every target with its clients. The returned value is
// a fresh copy on every call.
func AvailableTargets() []Target {
	out := make([]Target, 0, len(targets))
	for _, d := range targets {
		t := d.target
		if d.target.Clients != nil {
			t.Clients = append([]Client(nil), d.target.Clients...)
		}
		out = append(out, t)
	}
	return out
}

func lookupTarget(key string) (targetDef, bool) {
	for _, d := range targets {
		if d.target.Key == key {
			return d, true
		}
	}
	return targetDef{}, false
}

package targets

import "strings"

// All selects every target, or every client of a target.
const All = "all"

// Request is one parsed entry of a selection spec.
type Request struct {
	Target string
	Client string
}

// Selection maps selected targets to their entries. Clientless targets have
// Selected set; targets with clients list only their selected clients.
type Selection map[string]Entry

// ParseSpec splits a selection spec such as "shell:curl,node,all" into
// requests. Empty target or client parts default to All.
func ParseSpec(spec string) []Request {
	parts := strings.Split(spec, ",")
	out := make([]Request, 0, len(parts))
	for _, part := range parts {
		fields := strings.Split(strings.TrimSpace(part), ":")

		req := Request{Target: strings.TrimSpace(fields[0]), Client: All}
		if len(fields) > 1 {
			req.Client = strings.TrimSpace(fields[1])
		}
		if req.Target == "" {
			req.Target = All
		}
		if req.Client == "" {
			req.Client = All
		}
		out = append(out, req)
	}
	return out
}

// Select reduces a selection spec against the available targets, left to
// right. An "all" entry replaces everything accumulated so far; "target:all"
// replaces only that target's clients; "target:client" adds to the clients
// already selected for the target. Unknown targets and clients are ignored.
func Select(spec string, available Availability) Selection {
	if strings.TrimSpace(spec) == "" {
		spec = All
	}

	selected := Selection{}
	for _, req := range ParseSpec(spec) {
		if req.Target == All {
			selected = everything(available)
			continue
		}

		entry, ok := available[req.Target]
		if !ok {
			continue
		}

		if !entry.HasClients() {
			selected[req.Target] = Entry{Selected: true}
			continue
		}

		if req.Client == All {
			selected[req.Target] = allClients(entry)
			continue
		}

		if _, ok := entry.Clients[req.Client]; !ok {
			continue
		}

		current, ok := selected[req.Target]
		if !ok {
			current = Entry{Clients: map[string]bool{}}
		}
		current.Clients[req.Client] = true
		selected[req.Target] = current
	}

	return selected
}

// Clients returns the selected client keys of a target in a stable order.
func (s Selection) Clients(target string) []string {
	return sortedClients(s[target].Clients)
}

func everything(available Availability) Selection {
	out := make(Selection, len(available))
	for key, entry := range available {
		if entry.HasClients() {
			out[key] = allClients(entry)
		} else {
			out[key] = Entry{Selected: true}
		}
	}
	return out
}

func allClients(entry Entry) Entry {
	clients := make(map[string]bool, len(entry.Clients))
	for c := range entry.Clients {
		clients[c] = true
	}
	return Entry{Clients: clients}
}

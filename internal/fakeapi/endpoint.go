package fakeapi

import "strings"

// Endpoint is one operation of the logger API.
type Endpoint int

const (
	EndpointUnknown Endpoint = iota
	EndpointOpModes
	EndpointRuns
	EndpointRun
	EndpointData
	EndpointFS
	EndpointRename
	EndpointDelete
)

// endpointPrefixes is checked in order; "runs" must come before "run".
var endpointPrefixes = []struct {
	prefix   string
	endpoint Endpoint
}{
	{"opmodes", EndpointOpModes},
	{"runs", EndpointRuns},
	{"run", EndpointRun},
	{"data", EndpointData},
	{"fs", EndpointFS},
	{"rename", EndpointRename},
	{"delete", EndpointDelete},
}

// ParseEndpoint classifies the path below the API prefix by its leading text.
func ParseEndpoint(subPath string) Endpoint {
	for _, p := range endpointPrefixes {
		if strings.HasPrefix(subPath, p.prefix) {
			return p.endpoint
		}
	}
	return EndpointUnknown
}

func (e Endpoint) String() string {
	switch e {
	case EndpointOpModes:
		return "opmodes"
	case EndpointRuns:
		return "runs"
	case EndpointRun:
		return "run"
	case EndpointData:
		return "data"
	case EndpointFS:
		return "fs"
	case EndpointRename:
		return "rename"
	case EndpointDelete:
		return "delete"
	default:
		return "unknown"
	}
}

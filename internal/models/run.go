package models

// OpModeDevTest is the only operating mode the fake backend knows about.
const OpModeDevTest = "DEV_TEST"

// RunMeta describes one run file on disk.
type RunMeta struct {
	Name     string `json:"name" yaml:"name"`
	Bytes    int64  `json:"bytes" yaml:"bytes"`
	Modified int64  `json:"modified" yaml:"modified"`
}

// OpModeRuns groups the runs recorded under one operating mode.
type OpModeRuns struct {
	Name string    `json:"name" yaml:"name"`
	Runs []RunMeta `json:"runs" yaml:"runs"`
}

type OpModesResponse struct {
	OpModes []string `json:"opModes"`
}

type RunsResponse struct {
	OpMode string   `json:"opMode"`
	Runs   []string `json:"runs"`
}

type RunInfoResponse struct {
	OpMode string `json:"opMode"`
	Run    string `json:"run"`
	Exists bool   `json:"exists"`
	Bytes  int64  `json:"bytes"`
}

type FSResponse struct {
	OpModes []OpModeRuns `json:"opModes" yaml:"opModes"`
}

// MutationResponse is returned by rename and delete. Run is set for single-run
// operations, OpMode for a bulk delete.
type MutationResponse struct {
	OK     bool   `json:"ok"`
	Run    string `json:"run,omitempty"`
	OpMode string `json:"opMode,omitempty"`
}

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

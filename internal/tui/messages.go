package tui

type StatusMsg struct {
	Text  string
	IsErr bool
}

// snapshotLoadedMsg carries the bytes of a finished file read. Only the
// read whose seq matches the latest issued load is applied.
type snapshotLoadedMsg struct {
	seq     int
	path    string
	data    []byte
	err     error
	watched bool
}

type snapshotSavedMsg struct {
	path string
	err  error
}

type fileChangedMsg struct {
	path string
}

package ui

type entriesLoadedMsg struct {
	files []fileEntry
	err   error
}

type previewLoadedMsg struct {
	path  string
	lines []string
	err   error
}

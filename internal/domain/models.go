package domain

// Entry is a stored shell command together with its tag
type Entry struct {
	Namespace string
	Command   string
	Tag       string
}

// Stats summarises what a store currently holds
type Stats struct {
	Location   string // file path or "memory"
	Namespaces int
	Commands   int
}

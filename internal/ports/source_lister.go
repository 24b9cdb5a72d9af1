package ports

// SourceLister expands command-line arguments into the ordered list of files
// to process. Directory arguments are walked; file arguments pass through.
type SourceLister interface {
	ListSources(args []string, extensions []string) ([]string, error)
}

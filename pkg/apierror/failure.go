package apierror

// Failure wraps a Classification as an error so services can hand the
// normalized outcome up to the HTTP layer unchanged.
type Failure struct {
	Classification Classification
}

func (f *Failure) Error() string {
	return f.Classification.ErrorMessage
}

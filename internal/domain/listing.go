package domain

// Listing identifies a newly submitted document, for downstream
// consumers such as the updates feed.
type Listing struct {
	Collection  string `json:"collection"`
	DocumentID  string `json:"document_id"`
	SubmittedBy string `json:"submitted_by"`
}

package models

// WriteResult reports the outcome of one artifact write. Failures are
// recovered into the result rather than raised: Success false plus a
// non-empty Error. Size is the exact byte length written on success.
type WriteResult struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path"`
	Size     int    `json:"size,omitempty"`
	Error    string `json:"error,omitempty"`
}

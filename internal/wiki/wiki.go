package wiki

// Result is the uniform envelope for a summary lookup. OK discriminates the
// two shapes: on success Summary and URL are set and Error is empty; on
// failure only Topic and Error are set.
type Result struct {
	Topic     string `json:"topic"`
	OK        bool   `json:"ok"`
	Summary   string `json:"summary,omitempty"`
	URL       string `json:"url,omitempty"`
	Title     string `json:"title,omitempty"`
	PageID    int64  `json:"pageId,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Success reports whether the lookup produced usable summary text.
func (r Result) Success() bool {
	return r.OK && r.Summary != ""
}

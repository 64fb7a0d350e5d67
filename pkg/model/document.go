package model

// DatasetDocument describes one dataset of an exported entry.
type DatasetDocument struct {
	Name        string `json:"name" yaml:"name"`
	Definition  string `json:"definition,omitempty" yaml:"definition,omitempty"`
	Unit        string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Size        int64  `json:"size,omitempty" yaml:"size,omitempty"`
	_           struct{}
}

// EntryDocument is a serializable snapshot of an entry subtree: attributes,
// dataset inventory and children, in enumeration order.
type EntryDocument struct {
	Name       string            `json:"name,omitempty" yaml:"name,omitempty"`
	Path       string            `json:"path,omitempty" yaml:"path,omitempty"`
	Level      Level             `json:"level,omitempty" yaml:"level,omitempty"`
	Attributes *AttrMap          `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Datasets   []DatasetDocument `json:"datasets,omitempty" yaml:"datasets,omitempty"`
	Children   []EntryDocument   `json:"children,omitempty" yaml:"children,omitempty"`
	_          struct{}
}

// EntryDescription summarizes an entry for display.
type EntryDescription struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	Level       Level  `json:"level" yaml:"level"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Subject     string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Date        string `json:"date,omitempty" yaml:"date,omitempty"`
	Session     int    `json:"session_number,omitempty" yaml:"session_number,omitempty"`
	Domain      string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Children    int    `json:"children" yaml:"children"`
	Datasets    int    `json:"datasets" yaml:"datasets"`
	_           struct{}
}

// SubjectInfo identifies one subject under the root.
type SubjectInfo struct {
	Name string `json:"name" yaml:"name"`
	_    struct{}
}

// SubjectInfos is a sortable collection of subjects.
type SubjectInfos []SubjectInfo

func (s SubjectInfos) Len() int {
	return len(s)
}
func (s SubjectInfos) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
func (s SubjectInfos) Less(i, j int) bool {
	return s[i].Name < s[j].Name
}

// DateInfo identifies one acquisition date of a subject.
type DateInfo struct {
	Subject string `json:"subject" yaml:"subject"`
	Date    string `json:"date" yaml:"date"`
	_       struct{}
}

// DateInfos is a sortable collection of dates.
type DateInfos []DateInfo

func (s DateInfos) Len() int {
	return len(s)
}
func (s DateInfos) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
func (s DateInfos) Less(i, j int) bool {
	if s[i].Subject != s[j].Subject {
		return s[i].Subject < s[j].Subject
	}
	return s[i].Date < s[j].Date
}

// SessionInfo identifies one session of a subject on a date.
type SessionInfo struct {
	Subject string `json:"subject" yaml:"subject"`
	Date    string `json:"date" yaml:"date"`
	Number  int    `json:"session_number" yaml:"session_number"`
	_       struct{}
}

// SessionInfos is a sortable collection of sessions, numeric on the session
// number within a date.
type SessionInfos []SessionInfo

func (s SessionInfos) Len() int {
	return len(s)
}
func (s SessionInfos) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
func (s SessionInfos) Less(i, j int) bool {
	if s[i].Subject != s[j].Subject {
		return s[i].Subject < s[j].Subject
	}
	if s[i].Date != s[j].Date {
		return s[i].Date < s[j].Date
	}
	return s[i].Number < s[j].Number
}

// DatasetInfo describes one dataset attached to a session or domain entry.
type DatasetInfo struct {
	Name        string `json:"name" yaml:"name"`
	Definition  string `json:"definition,omitempty" yaml:"definition,omitempty"`
	Unit        string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Size        int64  `json:"size,omitempty" yaml:"size,omitempty"`
	_           struct{}
}

// DatasetInfos is a sortable collection of datasets.
type DatasetInfos []DatasetInfo

func (s DatasetInfos) Len() int {
	return len(s)
}
func (s DatasetInfos) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
func (s DatasetInfos) Less(i, j int) bool {
	return s[i].Name < s[j].Name
}

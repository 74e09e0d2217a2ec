package types

import "time"

// ChangeType classifies a single diff entry
type ChangeType string

const (
	ChangeAdded     ChangeType = "added"
	ChangeRemoved   ChangeType = "removed"
	ChangeModified  ChangeType = "modified"
	ChangeUnchanged ChangeType = "unchanged"
)

// InlineOp is the operation of one inline segment inside a modified line
type InlineOp string

const (
	InlineEqual  InlineOp = "equal"
	InlineInsert InlineOp = "insert"
	InlineDelete InlineOp = "delete"
)

// InlineSegment is a piece of a modified line that was kept, inserted or deleted
type InlineSegment struct {
	Op   InlineOp `json:"op"`
	Text string   `json:"text"`
}

// Change is one classified, user-facing diff entry.
// AContent is nil for added entries and BContent is nil for removed entries.
type Change struct {
	Type          ChangeType      `json:"type"`
	AContent      *string         `json:"a_content"`
	BContent      *string         `json:"b_content"`
	AStructuralID string          `json:"a_structural_id,omitempty"`
	BStructuralID string          `json:"b_structural_id,omitempty"`
	ALine         int             `json:"a_line,omitempty"`
	BLine         int             `json:"b_line,omitempty"`
	ASection      string          `json:"a_section,omitempty"`
	BSection      string          `json:"b_section,omitempty"`
	Renumbered    bool            `json:"renumbered,omitempty"`
	Inline        []InlineSegment `json:"inline,omitempty"`
}

// Statistics summarises a comparison
type Statistics struct {
	AddedCount      int      `json:"added_count"`
	RemovedCount    int      `json:"removed_count"`
	ModifiedCount   int      `json:"modified_count"`
	UnchangedCount  int      `json:"unchanged_count"`
	TotalUnitsA     int      `json:"total_units_a"`
	TotalUnitsB     int      `json:"total_units_b"`
	SimilarityRatio float64  `json:"similarity_ratio"`
	HunkCount       int      `json:"hunk_count"`
	WordCountA      int      `json:"word_count_a"`
	WordCountB      int      `json:"word_count_b"`
	CharCountA      int      `json:"char_count_a"`
	CharCountB      int      `json:"char_count_b"`
	ChangedSections []string `json:"changed_sections,omitempty"`
	PagesChanged    int      `json:"pages_changed,omitempty"`
}

// HunkContext holds the surrounding lines of a hunk in both documents
type HunkContext struct {
	BeforeA []string `json:"before_doc1"`
	AfterA  []string `json:"after_doc1"`
	BeforeB []string `json:"before_doc2"`
	AfterB  []string `json:"after_doc2"`
}

// Hunk is one contiguous block of differences, pointing into the change list
type Hunk struct {
	Kind        string      `json:"kind"` // "insert", "delete", "replace"
	AStart      int         `json:"a_start"`
	AEnd        int         `json:"a_end"`
	BStart      int         `json:"b_start"`
	BEnd        int         `json:"b_end"`
	ALine       int         `json:"a_line,omitempty"`
	BLine       int         `json:"b_line,omitempty"`
	FirstChange int         `json:"first_change"`
	ChangeCount int         `json:"change_count"`
	Context     HunkContext `json:"context"`
}

// ComparisonResult is the aggregate produced by one comparison. It is never
// mutated after construction.
type ComparisonResult struct {
	ID         string       `json:"id"`
	Document1  DocumentMeta `json:"document1"`
	Document2  DocumentMeta `json:"document2"`
	Changes    []Change     `json:"changes"`
	Statistics Statistics   `json:"statistics"`
	Hunks      []Hunk       `json:"hunks"`
	CreatedAt  time.Time    `json:"created_at"`
}

package scripts

import "time"

// Graph is a stored visual-script graph document. Source holds the
// serialized node-graph JSON produced by the behavior editor.
type Graph struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:128;uniqueIndex"`
	Source    string
	UpdatedAt time.Time
}

// TableName sets the storage table for script graphs.
func (Graph) TableName() string {
	return "script_graphs"
}

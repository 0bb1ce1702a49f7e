package domain

import (
	"github.com/google/uuid"
)

// TreeNode is one localized node in a resolved subtree. Title and
// Description each carry exactly one language key (the requested language
// or the English fallback); Description is omitted when the node has none.
type TreeNode struct {
	ID           uuid.UUID  `json:"id"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty"`
	MasterNodeID *uuid.UUID `json:"master_node_id,omitempty"`

	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description,omitempty"`

	NodeType     string  `json:"node_type"`
	Icon         *string `json:"icon,omitempty"`
	Header       *string `json:"header,omitempty"`
	SubHeader    *string `json:"sub_header,omitempty"`
	Index        int     `json:"index"`
	IsExpandable bool    `json:"is_expandable"`
	HasOptions   bool    `json:"has_options"`
	TimeSpent    *int    `json:"time_spent,omitempty"`

	RedirectAlgoType *Vertical  `json:"redirect_algo_type,omitempty"`
	RedirectNodeID   *uuid.UUID `json:"redirect_node_id,omitempty"`

	Activated bool `json:"activated"`

	Children []TreeNode `json:"children"`
}

// Count returns the number of nodes in the subtree including the receiver.
func (n *TreeNode) Count() int {
	total := 1
	for i := range n.Children {
		total += n.Children[i].Count()
	}
	return total
}

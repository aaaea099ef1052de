package book

// Node is one script instruction in wire shape. An empty Command means the
// node is a plain dialogue line. Arg1..Arg6 are positional and mean different
// things to different commands. Empty fields were absent in the document.
type Node struct {
	Command    string `json:"command,omitempty"`
	Arg1       string `json:"arg1,omitempty"`
	Arg2       string `json:"arg2,omitempty"`
	Arg3       string `json:"arg3,omitempty"`
	Arg4       string `json:"arg4,omitempty"`
	Arg5       string `json:"arg5,omitempty"`
	Arg6       string `json:"arg6,omitempty"`
	WaitType   string `json:"waitType,omitempty"`
	Text       string `json:"text,omitempty"`
	PageCtrl   string `json:"pageCtrl,omitempty"`
	Voice      string `json:"voice,omitempty"`
	WindowType string `json:"windowType,omitempty"`
}

// Args returns the six positional arguments in order.
func (n *Node) Args() [6]string {
	return [6]string{n.Arg1, n.Arg2, n.Arg3, n.Arg4, n.Arg5, n.Arg6}
}

// ParseBook turns a book document into its node sequence. Every grid
// contributes, in grid order then row order, and that order is the execution
// order. A document that does not match the exporter schema yields no nodes.
func ParseBook(data []byte) []Node {
	root, err := decodeRoot(data)
	if err != nil {
		return []Node{}
	}

	nodes := make([]Node, 0)
	for i := range root.SettingList {
		root.SettingList[i].records(func(rec record) {
			nodes = append(nodes, Node{
				Command:    rec["Command"],
				Arg1:       rec["Arg1"],
				Arg2:       rec["Arg2"],
				Arg3:       rec["Arg3"],
				Arg4:       rec["Arg4"],
				Arg5:       rec["Arg5"],
				Arg6:       rec["Arg6"],
				WaitType:   rec["WaitType"],
				Text:       rec["Text"],
				PageCtrl:   rec["PageCtrl"],
				Voice:      rec["Voice"],
				WindowType: rec["WindowType"],
			})
		})
	}
	return nodes
}

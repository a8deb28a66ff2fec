package entity

// Group is a node of the account/item classification tree.
type Group struct {
	Code       string
	Name       string
	ParentCode string // empty at the root level
}

// GroupTree is a group with its nested children, as served by /api/groups/tree.
type GroupTree struct {
	Code     string
	Name     string
	Children []*GroupTree
}

// BuildGroupTree nests a flat group list. Orphans (unknown parent) are placed at the root.
// Input order is preserved among siblings.
func BuildGroupTree(groups []*Group) []*GroupTree {
	nodes := make(map[string]*GroupTree, len(groups))
	for _, g := range groups {
		nodes[g.Code] = &GroupTree{Code: g.Code, Name: g.Name}
	}
	var roots []*GroupTree
	for _, g := range groups {
		n := nodes[g.Code]
		parent, ok := nodes[g.ParentCode]
		if g.ParentCode == "" || !ok || parent == n {
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}
	return roots
}

// StarterGroups the tree a fresh store starts with, parents before children.
func StarterGroups() []Group {
	return []Group{
		{Code: "01", Name: "Capital Account"},
		{Code: "02", Name: "Current Assets"},
		{Code: "0201", Name: "Cash-in-Hand", ParentCode: "02"},
		{Code: "0202", Name: "Sundry Debtors", ParentCode: "02"},
		{Code: "0203", Name: "Stock-in-Hand", ParentCode: "02"},
		{Code: "020301", Name: "Finished Goods", ParentCode: "0203"},
		{Code: "020302", Name: "Scrap", ParentCode: "0203"},
		{Code: "03", Name: "Current Liabilities"},
		{Code: "0301", Name: "Sundry Creditors", ParentCode: "03"},
		{Code: "0302", Name: "Duties & Taxes", ParentCode: "03"},
		{Code: "04", Name: "Sales Accounts"},
		{Code: "05", Name: "Purchase Accounts"},
		{Code: "06", Name: "Indirect Expenses"},
	}
}

package pet

// ItemCount is one inventory line.
type ItemCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Inventory maps item names to counts. Unknown items count as zero.
// Iteration follows the order in which items were first added, which is the
// order they are written to a save file.
type Inventory struct {
	counts map[string]int
	order  []string
}

func NewInventory() *Inventory {
	return &Inventory{counts: make(map[string]int)}
}

func (inv *Inventory) Count(item string) int {
	return inv.counts[item]
}

// Add increases the count of item by n. A result below zero is stored as zero.
func (inv *Inventory) Add(item string, n int) {
	if inv.counts == nil {
		inv.counts = make(map[string]int)
	}
	cur, seen := inv.counts[item]
	if !seen {
		inv.order = append(inv.order, item)
	}
	inv.counts[item] = max(0, cur+n)
}

// Remove decrements item by n if at least n are held. It reports whether
// anything was removed; on false the inventory is unchanged.
func (inv *Inventory) Remove(item string, n int) bool {
	cur := inv.counts[item]
	if cur < n {
		return false
	}
	inv.counts[item] = cur - n
	return true
}

// Items returns a snapshot of every entry, including zero counts, in
// insertion order.
func (inv *Inventory) Items() []ItemCount {
	items := make([]ItemCount, 0, len(inv.order))
	for _, name := range inv.order {
		items = append(items, ItemCount{Name: name, Count: inv.counts[name]})
	}
	return items
}

func (inv *Inventory) Len() int { return len(inv.order) }

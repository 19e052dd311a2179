package games

// Family manages game series where one external forum group covers multiple
// titles. For example, the "ARMA" forum groups grant the same level across
// ARMA, ARMA2, and ARMA3.
type Family struct {
	families []family
}

type family struct {
	Name    string     // Series identifier (e.g., "ARMA")
	Members []GameType // Titles in this series
}

// NewFamily creates a Family registry with the default game series.
func NewFamily() *Family {
	f := &Family{}
	// ARMA series
	f.AddFamily("ARMA", []GameType{ARMA, ARMA2, ARMA3})
	// Battlefield series
	f.AddFamily("Battlefield", []GameType{Battlefield1, Battlefield3, Battlefield4, Battlefield5, BattlefieldBadCompany2})
	return f
}

// AddFamily registers a new game series.
func (f *Family) AddFamily(name string, members []GameType) {
	f.families = append(f.families, family{Name: name, Members: members})
}

// Members returns all titles of a series by series name.
// Returns nil if no series with that name exists.
func (f *Family) Members(name string) []GameType {
	for _, fam := range f.families {
		if fam.Name == name {
			return fam.Members
		}
	}
	return nil
}

// FamilyName returns the series name for a title.
// Returns empty string if the title doesn't belong to any series.
func (f *Family) FamilyName(g GameType) string {
	for _, fam := range f.families {
		for _, m := range fam.Members {
			if m == g {
				return fam.Name
			}
		}
	}
	return ""
}

// Siblings returns all titles of the series a title belongs to (including itself).
// Returns nil if the title doesn't belong to any series.
func (f *Family) Siblings(g GameType) []GameType {
	for _, fam := range f.families {
		for _, m := range fam.Members {
			if m == g {
				return fam.Members
			}
		}
	}
	return nil
}

// SameFamily checks if two titles belong to the same series.
func (f *Family) SameFamily(a, b GameType) bool {
	fa := f.FamilyName(a)
	fb := f.FamilyName(b)
	if fa == "" || fb == "" {
		return false
	}
	return fa == fb
}

// IsFamilyName checks if the given name is a series name (not a title).
func (f *Family) IsFamilyName(name string) bool {
	for _, fam := range f.families {
		if fam.Name == name {
			return true
		}
	}
	return false
}

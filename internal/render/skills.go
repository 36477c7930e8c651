package render

import (
	"strings"

	"github.com/dgallion1/folio/internal/content"
)

// SkillGroup is one rendered category of the skills page. A group holds
// either Skills or Groups.
type SkillGroup struct {
	Name   string
	Depth  int
	Class  string
	Skills []string
	Groups []SkillGroup
	Nested bool
}

// SkillCategory is a top-level skills category with its rendered body.
type SkillCategory struct {
	Title  string
	Groups []SkillGroup
}

// RenderSkills turns the skills tree into display groups. Top-level names
// have underscores replaced by spaces; nested names are kept verbatim.
func RenderSkills(tree *content.SkillTree) []SkillCategory {
	if tree == nil {
		return nil
	}
	out := make([]SkillCategory, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		cat := SkillCategory{Title: strings.ReplaceAll(e.Name, "_", " ")}
		if e.IsList() {
			cat.Groups = []SkillGroup{{Name: e.Name, Class: skillClass(0, false), Skills: e.Skills}}
		} else {
			cat.Groups = skillGroups(e.Children, 0)
		}
		out = append(out, cat)
	}
	return out
}

func skillGroups(tree *content.SkillTree, depth int) []SkillGroup {
	groups := make([]SkillGroup, 0, tree.Len())
	for _, e := range tree.Entries {
		g := SkillGroup{Name: e.Name, Depth: depth}
		if e.IsList() {
			g.Class = skillClass(depth, false)
			g.Skills = e.Skills
		} else {
			g.Nested = true
			g.Class = skillClass(depth, true)
			g.Groups = skillGroups(e.Children, depth+1)
		}
		groups = append(groups, g)
	}
	return groups
}

// skillClass sizes group headings by depth; nested categories get a rule
// under their heading.
func skillClass(depth int, nested bool) string {
	size := "sk-2"
	switch depth {
	case 0:
		size = "sk-0"
	case 1:
		size = "sk-1"
	}
	cls := "skill-group " + size
	if depth > 0 {
		cls += " sk-indent"
	}
	if nested {
		cls += " sk-nested"
	}
	return cls
}

package documents

import "testing"

func TestSectionPath(t *testing.T) {
	cases := []struct {
		name     string
		parent   string
		title    string
		position int
		want     string
	}{
		{name: "root", parent: "", title: "Getting Started", position: 0, want: "getting-started"},
		{name: "nested", parent: "guide", title: "Install Steps", position: 1, want: "guide.install-steps"},
		{name: "unsluggable title", parent: "guide", title: "!!!", position: 2, want: "guide.section-2"},
		{name: "mixed case", parent: "", title: "Mixed Case Title", position: 0, want: "mixed-case-title"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sectionPath(tc.parent, tc.title, tc.position)
			if got != tc.want {
				t.Fatalf("sectionPath(%q, %q, %d) = %q, want %q", tc.parent, tc.title, tc.position, got, tc.want)
			}
		})
	}
}

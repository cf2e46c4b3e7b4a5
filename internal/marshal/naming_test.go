package marshal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToWireName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"uuid", "uuid"},
		{"firstName", "first_name"},
		{"conflictOfInterest", "conflict_of_interest"},
		{"isOpen", "is_open"},
		{"sortId", "sort_id"},
		{"doiURL", "doi_u_r_l"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ToWireName(tc.in))
		})
	}
}

func TestFromWireName(t *testing.T) {
	assert.Equal(t, "firstName", FromWireName("first_name"))
	assert.Equal(t, "conflictOfInterest", FromWireName("conflict_of_interest"))
	assert.Equal(t, "name", FromWireName("name"))
}

func TestWireName_Bijection(t *testing.T) {
	ids := []string{
		"uuid", "prefix", "name", "short", "cite", "link", "isOpen", "groups",
		"owners", "abstracts", "mail", "firstName", "middleName", "lastName",
		"position", "affiliations", "address", "country", "department", "section",
		"caption", "file", "authors", "title", "year", "doi", "sortId", "topic",
		"text", "conflictOfInterest", "acknowledgements", "state", "figures",
		"references", "doiURL",
	}

	wires := make(map[string]string, len(ids))
	for _, id := range ids {
		w := ToWireName(id)
		assert.Equal(t, id, FromWireName(w), "round trip of %q", id)
		if prev, dup := wires[w]; dup {
			t.Fatalf("%q and %q collide on %q", prev, id, w)
		}
		wires[w] = id
	}
}

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestSerialize(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
		want string
	}{
		{
			name: "flat pagination",
			obj:  Object{{"page", 1}, {"take", 10}},
			want: "page=1&take=10",
		},
		{
			name: "nested filter",
			obj:  Object{{"page", 1}, {"query", Object{{"isVerified", true}}}},
			want: "page=1&query%5BisVerified%5D=true",
		},
		{
			name: "array keeps order and count",
			obj:  Object{{"tags", []string{"a", "b", "a"}}},
			want: "tags[0]=a&tags[1]=b&tags[2]=a",
		},
		{
			name: "array inside nested object",
			obj:  Object{{"query", Object{{"category", []any{"question", "complaint"}}}}},
			want: "query%5Bcategory%5D[0]=question&query%5Bcategory%5D[1]=complaint",
		},
		{
			name: "values are encoded",
			obj:  Object{{"search", "café & co"}},
			want: "search=caf%C3%A9%20%26%20co",
		},
		{
			name: "nil values contribute nothing",
			obj:  Object{{"a", nil}, {"b", "x"}, {"c", (*bool)(nil)}},
			want: "b=x",
		},
		{
			name: "pointers are dereferenced",
			obj:  Object{{"isSeen", boolPtr(false)}, {"duration", 1.5}},
			want: "isSeen=false&duration=1.5",
		},
		{
			name: "sort options",
			obj:  Object{{"sort", Object{{"createdAt", "DESC"}}}},
			want: "sort%5BcreatedAt%5D=DESC",
		},
		{
			name: "empty string is not filtered by the serializer",
			obj:  Object{{"name", ""}},
			want: "name=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Serialize(tt.obj))
		})
	}
}

func TestSerialize_Deterministic(t *testing.T) {
	obj := Object{{"page", 2}, {"query", map[string]any{"name": "acme", "isVerified": true}}}
	first := Serialize(obj)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Serialize(obj))
	}
	assert.Equal(t, "page=2&query%5BisVerified%5D=true&query%5Bname%5D=acme", first)
}

func TestSerializeParse_Idempotent(t *testing.T) {
	cases := []Object{
		{},
		{{"page", 1}, {"take", 25}},
		{{"name", "Société Générale"}, {"isVerified", true}},
		{{"email", "a+b@example.com"}, {"q", "50% off & more=yes"}},
		{{"z", "last"}, {"a", "first"}},
	}

	for _, obj := range cases {
		once := Serialize(Compact(obj))
		parsed, err := Parse(once)
		require.NoError(t, err)
		assert.Equal(t, once, Serialize(parsed))
	}
}

func TestParse(t *testing.T) {
	obj, err := Parse("?page=1&name=caf%C3%A9&&flag")
	require.NoError(t, err)
	assert.Equal(t, Object{{"page", "1"}, {"name", "café"}, {"flag", ""}}, obj)

	_, err = Parse("bad=%zz")
	assert.Error(t, err)
}

func TestCompact(t *testing.T) {
	empty := ""
	obj := Object{
		{"page", 1},
		{"name", ""},
		{"email", nil},
		{"isVerified", (*bool)(nil)},
		{"answeredById", &empty},
		{"isSeen", boolPtr(false)},
		{"query", Object{{"name", ""}}},
		{"sort", Object{{"createdAt", "ASC"}}},
	}

	got := Compact(obj)
	assert.Equal(t, "page=1&isSeen=false&sort%5BcreatedAt%5D=ASC", Serialize(got))
}

func TestFromStruct(t *testing.T) {
	type filter struct {
		Name       string   `json:"name,omitempty"`
		Category   []string `json:"category,omitempty"`
		IsAnswered *bool    `json:"isAnswered,omitempty"`
	}
	type options struct {
		Page  int    `json:"page"`
		Take  int    `json:"take"`
		Query filter `json:"query"`
	}

	obj, err := FromStruct(options{Page: 1, Take: 10, Query: filter{Category: []string{"feedback"}, IsAnswered: boolPtr(true)}})
	require.NoError(t, err)
	assert.Equal(t, "page=1&take=10&query%5Bcategory%5D[0]=feedback&query%5BisAnswered%5D=true", Serialize(obj))

	_, err = FromStruct([]int{1})
	assert.Error(t, err)
}

func TestObjectSet(t *testing.T) {
	obj := Object{{"page", 1}, {"take", 10}}
	obj = obj.Set("page", 3).Set("sort", "ASC")

	v, ok := obj.Get("page")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, "page=3&take=10&sort=ASC", Serialize(obj))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "a-b_c.d!e~f*g'h(i)", Escape("a-b_c.d!e~f*g'h(i)"))
	assert.Equal(t, "%5B%5D%20%2B%2F%3F", Escape("[] +/?"))
}

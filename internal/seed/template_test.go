package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTemplateCoversAllSectionTypes(t *testing.T) {
	tpl := BuildTemplate()
	require.NotEmpty(t, tpl.Sections)

	types := map[string]bool{}
	for _, sec := range tpl.Sections {
		types[sec.Type] = true
	}
	for _, want := range []string{"key_value", "checklist", "table", "photos", "notes"} {
		assert.True(t, types[want], "missing section type %s", want)
	}
}

func TestBuildTemplateSectionShapes(t *testing.T) {
	tpl := BuildTemplate()
	for _, sec := range tpl.Sections {
		switch sec.Type {
		case "key_value":
			assert.NotEmpty(t, sec.Items, "key_value section %q needs items", sec.Title)
		case "checklist":
			assert.NotEmpty(t, sec.Questions, "checklist section %q needs questions", sec.Title)
			for _, q := range sec.Questions {
				assert.NotEmpty(t, q.Options, "question %q needs options", q.Name)
			}
		case "table":
			assert.NotEmpty(t, sec.Columns, "table section %q needs columns", sec.Title)
			assert.NotEmpty(t, sec.Field)
		case "photos", "notes":
			assert.NotEmpty(t, sec.Field, "section %q needs a field", sec.Title)
		default:
			t.Fatalf("unexpected section type %q", sec.Type)
		}
	}
}

func TestLoadTemplate(t *testing.T) {
	content := `
sections:
  - title: Genel
    type: key_value
    items:
      - name: model
        label: Model
        value_type: text
  - title: Fotolar
    type: photos
    field: genel_gorunum
    display: grid
    max_count: 4
`
	path := filepath.Join(t.TempDir(), "template.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tpl, err := LoadTemplate(path)
	require.NoError(t, err)
	require.Len(t, tpl.Sections, 2)
	assert.Equal(t, "key_value", tpl.Sections[0].Type)
	assert.Equal(t, "model", tpl.Sections[0].Items[0].Name)
	assert.Equal(t, "text", tpl.Sections[0].Items[0].ValueType)
	assert.Equal(t, 4, tpl.Sections[1].MaxCount)
}

func TestLoadTemplateRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sections: []\n"), 0o644))

	_, err := LoadTemplate(path)
	assert.Error(t, err)
}

func TestLoadTemplateMissingFile(t *testing.T) {
	_, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// Package seed creates sample equipment records with rich inspection
// templates covering every section type the backend validator accepts.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Template is an equipment inspection template.
type Template struct {
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section is one template section. Which of the optional fields apply
// depends on Type: key_value carries Items, checklist carries
// Questions, table carries Columns, photos and notes carry Field.
type Section struct {
	ID        string     `json:"id,omitempty" yaml:"id,omitempty"`
	Title     string     `json:"title" yaml:"title"`
	Type      string     `json:"type" yaml:"type"`
	Items     []Item     `json:"items,omitempty" yaml:"items,omitempty"`
	Questions []Question `json:"questions,omitempty" yaml:"questions,omitempty"`
	Columns   []Column   `json:"columns,omitempty" yaml:"columns,omitempty"`
	Field     string     `json:"field,omitempty" yaml:"field,omitempty"`
	Display   string     `json:"display,omitempty" yaml:"display,omitempty"`
	MaxCount  int        `json:"maxCount,omitempty" yaml:"max_count,omitempty"`
}

// Item is a key_value entry.
type Item struct {
	Name      string         `json:"name" yaml:"name"`
	Label     string         `json:"label" yaml:"label"`
	ValueType string         `json:"valueType" yaml:"value_type"`
	Options   []SelectOption `json:"options,omitempty" yaml:"options,omitempty"`
	Required  bool           `json:"required,omitempty" yaml:"required,omitempty"`
}

// SelectOption is one choice of a select-typed item.
type SelectOption struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Question is a checklist entry.
type Question struct {
	Name       string   `json:"name" yaml:"name"`
	Label      string   `json:"label" yaml:"label"`
	Options    []string `json:"options" yaml:"options"`
	PassValues []string `json:"passValues,omitempty" yaml:"pass_values,omitempty"`
	Required   bool     `json:"required,omitempty" yaml:"required,omitempty"`
}

// Column is a table column.
type Column struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
}

// BuildTemplate returns the sample template exercising every supported
// section type.
func BuildTemplate() Template {
	return Template{
		Sections: []Section{
			{
				Title: "Genel Bilgiler",
				Type:  "key_value",
				Items: []Item{
					{Name: "imalatci", Label: "İmalatçı", ValueType: "text"},
					{Name: "model", Label: "Model", ValueType: "text"},
					{Name: "seri_no", Label: "Seri No", ValueType: "text"},
					{Name: "uretim_tarihi", Label: "Üretim Tarihi", ValueType: "date"},
					{Name: "calisma_ortami", Label: "Çalışma Ortamı", ValueType: "select", Options: []SelectOption{
						{Label: "İç Mekan", Value: "ic"},
						{Label: "Dış Mekan", Value: "dis"},
					}},
					{Name: "azami_kapasite_ton", Label: "Azami Kapasite (ton)", ValueType: "number"},
				},
			},
			{
				Title: "Güvenlik Kontrolleri",
				Type:  "checklist",
				Questions: []Question{
					{Name: "emniyet_switch", Label: "Emniyet Switch", Options: []string{"Uygun", "Uygun Değil", "N/A"}},
					{Name: "limit_switch", Label: "Limit Switch", Options: []string{"Uygun", "Uygun Değil", "N/A"}},
					{Name: "halat_durumu", Label: "Halat Durumu", Options: []string{"Uygun", "Uygun Değil", "N/A"}},
					{Name: "kanca_durumu", Label: "Kanca Durumu", Options: []string{"Uygun", "Uygun Değil", "N/A"}},
				},
			},
			{
				Title: "Teknik Değerler",
				Type:  "key_value",
				Items: []Item{
					{Name: "maksimum_yukseklik_m", Label: "Maksimum Yükseklik (m)", ValueType: "number"},
					{Name: "bom_uzunlugu_m", Label: "Bom Uzunluğu (m)", ValueType: "number"},
					{Name: "kullanim_amaci", Label: "Kullanım Amacı", ValueType: "text"},
					{Name: "son_bakim_tarihi", Label: "Son Bakım Tarihi", ValueType: "date"},
				},
			},
			{
				Title: "Bakım / Servis Kayıtları",
				Type:  "table",
				Field: "bakim_kayitlari",
				Columns: []Column{
					{Name: "tarih", Label: "Tarih"},
					{Name: "islem", Label: "İşlem"},
					{Name: "teknisyen", Label: "Teknisyen"},
					{Name: "not", Label: "Not"},
				},
			},
			{
				Title:    "Fotoğraflar",
				Type:     "photos",
				Field:    "genel_gorunum",
				Display:  "grid",
				MaxCount: 12,
			},
			{
				Title: "Ek Notlar",
				Type:  "notes",
				Field: "ek_notlar",
			},
		},
	}
}

// LoadTemplate parses a custom template definition from a YAML file.
func LoadTemplate(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("read template %q: %w", path, err)
	}
	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return Template{}, fmt.Errorf("parse template %q: %w", path, err)
	}
	if len(tpl.Sections) == 0 {
		return Template{}, fmt.Errorf("template %q has no sections", path)
	}
	return tpl, nil
}

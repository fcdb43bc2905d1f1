package model

import "cmp"

// SoundRow is a custom drop sound together with its provenance and license.
type SoundRow struct {
	Sound            string `gorm:"column:sound;primaryKey" json:"sound"`
	FileName         string `gorm:"column:file_name" json:"file_name"`
	OriginalFileName string `gorm:"column:original_file_name" json:"original_file_name"`
	Source           string `gorm:"column:source" json:"source"`
	Composer         string `gorm:"column:composer" json:"composer"`
	IsModified       bool   `gorm:"column:is_modified" json:"is_modified"`
	URL              string `gorm:"column:url" json:"url"`
	License          string `gorm:"column:license" json:"license"`
}

func (SoundRow) TableName() string { return TableSounds }

func (r SoundRow) Compare(o SoundRow) int {
	return cmp.Or(
		cmp.Compare(r.Sound, o.Sound),
		cmp.Compare(r.FileName, o.FileName),
		cmp.Compare(r.OriginalFileName, o.OriginalFileName),
		cmp.Compare(r.Source, o.Source),
		cmp.Compare(r.Composer, o.Composer),
		cmpBool(r.IsModified, o.IsModified),
		cmp.Compare(r.URL, o.URL),
		cmp.Compare(r.License, o.License),
	)
}

func (r SoundRow) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"sound", r.Sound},
		{"file_name", r.FileName},
		{"original_file_name", r.OriginalFileName},
		{"source", r.Source},
		{"composer", r.Composer},
		{"license", r.License},
	} {
		if err := required(f.name, f.value); err != nil {
			return err
		}
	}
	return validateURL("url", r.URL)
}

package model

import "cmp"

// LicenseRow is a license under which custom sounds are distributed.
type LicenseRow struct {
	License string `gorm:"column:license;primaryKey" json:"license"`
	URL     string `gorm:"column:url" json:"url"`
}

func (LicenseRow) TableName() string { return TableLicenses }

func (r LicenseRow) Compare(o LicenseRow) int {
	return cmp.Or(
		cmp.Compare(r.License, o.License),
		cmp.Compare(r.URL, o.URL),
	)
}

func (r LicenseRow) Validate() error {
	if err := required("license", r.License); err != nil {
		return err
	}
	return validateURL("url", r.URL)
}

package license

import "time"

const (
	StatusActive    = "Active"
	StatusExpired   = "Expired"
	StatusSuspended = "Suspended"
	StatusRevoked   = "Revoked"
)

type License struct {
	ID                 uint       `gorm:"column:id;primaryKey"`
	CompanyName        string     `gorm:"column:company_name;not null;uniqueIndex:uq_licenses_company_number"`
	CustomerID         uint       `gorm:"column:customer_id;not null"`
	OrderID            *uint      `gorm:"column:order_id"`
	LicenseNumber      string     `gorm:"column:license_number;not null;uniqueIndex:uq_licenses_company_number"`
	LicenseType        string     `gorm:"column:license_type"`
	IssueDate          time.Time  `gorm:"column:issue_date;type:date;not null"`
	ExpiryDate         *time.Time `gorm:"column:expiry_date;type:date"`
	Status             string     `gorm:"column:status;not null"`
	Notes              string     `gorm:"column:notes"`
	LicenseDocumentURL *string    `gorm:"column:license_document_url"`
	ETACertificateURL  *string    `gorm:"column:eta_certificate_url"`
	ImportLicenseURL   *string    `gorm:"column:import_license_url"`
	CreatedBy          string     `gorm:"column:created_by"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Devices []LicenseDevice `gorm:"foreignKey:LicenseID"`
}

func (License) TableName() string {
	return "licenses"
}

// FileURLs lists the stored certificate blobs.
func (l License) FileURLs() []string {
	var urls []string
	for _, u := range []*string{l.LicenseDocumentURL, l.ETACertificateURL, l.ImportLicenseURL} {
		if u != nil && *u != "" {
			urls = append(urls, *u)
		}
	}
	return urls
}

// ExpiresWithin reports whether the license expires in [now, now+days].
func (l License) ExpiresWithin(now time.Time, days int) bool {
	if l.ExpiryDate == nil {
		return false
	}
	from := now.Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, days)
	return !l.ExpiryDate.Before(from) && !l.ExpiryDate.After(to)
}

type LicenseDevice struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	LicenseID    uint      `gorm:"column:license_id;not null;index"`
	DeviceName   string    `gorm:"column:device_name;not null"`
	SerialNumber string    `gorm:"column:serial_number"`
	MACAddress   string    `gorm:"column:mac_address"`
	Model        string    `gorm:"column:model"`
	Quantity     int       `gorm:"column:quantity;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LicenseDevice) TableName() string {
	return "license_devices"
}

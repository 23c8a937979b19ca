package license

import "go-cpq/internal/shared/upload"

const (
	LicenseDocumentField = "licenseDocument"
	ETACertificateField  = "etaCertificate"
	ImportLicenseField   = "importLicense"

	DefaultExpiringDays = 30
	MaxExpiringDays     = 365
)

type DeviceRequest struct {
	DeviceName   string `json:"deviceName" binding:"required,max=255"`
	SerialNumber string `json:"serialNumber" binding:"omitempty,max=255"`
	MACAddress   string `json:"macAddress" binding:"omitempty,mac"`
	Model        string `json:"model" binding:"omitempty,max=255"`
	Quantity     int    `json:"quantity" binding:"omitempty,min=1"`
}

type CreateLicenseRequest struct {
	CustomerID    uint            `json:"customerId" binding:"required"`
	OrderID       *uint           `json:"orderId"`
	LicenseNumber string          `json:"licenseNumber" binding:"required,max=100"`
	LicenseType   string          `json:"licenseType" binding:"omitempty,max=100"`
	IssueDate     string          `json:"issueDate" binding:"required,datetime=2006-01-02"`
	ExpiryDate    string          `json:"expiryDate" binding:"omitempty,datetime=2006-01-02"`
	Status        string          `json:"status" binding:"omitempty,oneof=Active Expired Suspended Revoked"`
	Notes         string          `json:"notes" binding:"omitempty,max=5000"`
	Devices       []DeviceRequest `json:"devices" binding:"omitempty,dive"`
}

type UpdateLicenseRequest struct {
	CreateLicenseRequest
	RemoveLicenseDocument bool `json:"removeLicenseDocument"`
	RemoveETACertificate  bool `json:"removeEtaCertificate"`
	RemoveImportLicense   bool `json:"removeImportLicense"`
}

// LicenseFiles carries the certificate uploads of one request.
type LicenseFiles struct {
	LicenseDocument *upload.File
	ETACertificate  *upload.File
	ImportLicense   *upload.File
}

func FilesFrom(files upload.Files) LicenseFiles {
	return LicenseFiles{
		LicenseDocument: files.First(LicenseDocumentField),
		ETACertificate:  files.First(ETACertificateField),
		ImportLicense:   files.First(ImportLicenseField),
	}
}

type DeviceResponse struct {
	ID           uint   `json:"id"`
	DeviceName   string `json:"deviceName"`
	SerialNumber string `json:"serialNumber"`
	MACAddress   string `json:"macAddress"`
	Model        string `json:"model"`
	Quantity     int    `json:"quantity"`
}

type LicenseResponse struct {
	ID                 uint             `json:"id"`
	CompanyName        string           `json:"companyName"`
	CustomerID         uint             `json:"customerId"`
	OrderID            *uint            `json:"orderId"`
	LicenseNumber      string           `json:"licenseNumber"`
	LicenseType        string           `json:"licenseType"`
	IssueDate          string           `json:"issueDate"`
	ExpiryDate         *string          `json:"expiryDate"`
	Status             string           `json:"status"`
	Notes              string           `json:"notes"`
	LicenseDocumentURL *string          `json:"licenseDocumentUrl"`
	ETACertificateURL  *string          `json:"etaCertificateUrl"`
	ImportLicenseURL   *string          `json:"importLicenseUrl"`
	CreatedBy          string           `json:"createdBy"`
	CreatedAt          string           `json:"createdAt"`
	UpdatedAt          string           `json:"updatedAt"`
	Devices            []DeviceResponse `json:"devices"`
}

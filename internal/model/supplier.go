package model

import (
	"time"

	"gorm.io/gorm"
)

// VerificationStatus 供应商认证状态。
// 注意：供应商没有终态，verified 仍可被驳回，rejected 仍可重新通过。
type VerificationStatus string

const (
	SupplierPending   VerificationStatus = "pending"
	SupplierVerified  VerificationStatus = "verified"
	SupplierRejected  VerificationStatus = "rejected"
	SupplierSuspended VerificationStatus = "suspended"
)

// DocumentStatus 资质文件的单独审核状态。
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentVerified DocumentStatus = "verified"
	DocumentRejected DocumentStatus = "rejected"
)

// Supplier 入驻供应商。
type Supplier struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessName       string             `gorm:"size:255;not null" json:"business_name"`
	ContactPerson      string             `gorm:"size:128" json:"contact_person"`
	Email              string             `gorm:"size:255;index" json:"email"`
	Phone              string             `gorm:"size:32" json:"phone"`
	VerificationStatus VerificationStatus `gorm:"type:VARCHAR(16);not null;default:'pending';index" json:"verification_status"`
	Documents          []Document         `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
}

func (Supplier) TableName() string { return "suppliers" }

// Document 供应商资质文件（执照、税务登记等）。
type Document struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	SupplierID uint           `gorm:"index" json:"supplier_id"`
	Type       string         `gorm:"size:64;not null" json:"document_type"`
	Status     DocumentStatus `gorm:"type:VARCHAR(16);not null;default:'pending'" json:"document_status"`
	FileURL    string         `gorm:"size:512" json:"file_url"`
}

func (Document) TableName() string { return "supplier_documents" }

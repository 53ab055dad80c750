package sqlite

import "time"

// Las fechas de calendario se guardan como TEXT YYYY-MM-DD: el orden lexicográfico
// coincide con el cronológico y los filtros de rango se comparan como texto.

type BaseModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (BaseModel) TableName() string { return "bases" }

type EquipmentTypeModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"uniqueIndex;not null"`
	Category  string `gorm:"not null"`
	Unit      string `gorm:"not null"`
	CreatedAt time.Time
}

func (EquipmentTypeModel) TableName() string { return "equipment_types" }

type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FullName     string `gorm:"not null;default:''"`
	Role         string `gorm:"not null"`
	HomeBaseID   *int64
	CreatedAt    time.Time
}

func (UserModel) TableName() string { return "users" }

type OpeningStockModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	BaseID      int64  `gorm:"not null"`
	EquipmentID int64  `gorm:"not null"`
	Quantity    int64  `gorm:"not null"`
	Date        string `gorm:"column:date;not null"`
	CreatedBy   int64  `gorm:"not null"`
	CreatedAt   time.Time
}

func (OpeningStockModel) TableName() string { return "opening_stock" }

type PurchaseModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	BaseID       int64  `gorm:"not null"`
	EquipmentID  int64  `gorm:"not null"`
	Quantity     int64  `gorm:"not null"`
	PurchaseDate string `gorm:"not null"`
	CreatedBy    int64  `gorm:"not null"`
	CreatedAt    time.Time
}

func (PurchaseModel) TableName() string { return "purchases" }

type TransferModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	FromBaseID   int64  `gorm:"not null"`
	ToBaseID     int64  `gorm:"not null"`
	EquipmentID  int64  `gorm:"not null"`
	Quantity     int64  `gorm:"not null"`
	TransferDate string `gorm:"not null"`
	CreatedBy    int64  `gorm:"not null"`
	CreatedAt    time.Time
}

func (TransferModel) TableName() string { return "transfers" }

type AssignmentModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	BaseID        int64  `gorm:"not null"`
	EquipmentID   int64  `gorm:"not null"`
	PersonnelName string `gorm:"not null"`
	Quantity      int64  `gorm:"not null"`
	AssignedDate  string `gorm:"not null"`
	CreatedBy     int64  `gorm:"not null"`
	CreatedAt     time.Time
}

func (AssignmentModel) TableName() string { return "assignments" }

type ExpenditureModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	BaseID       int64  `gorm:"not null"`
	EquipmentID  int64  `gorm:"not null"`
	Quantity     int64  `gorm:"not null"`
	ExpendedDate string `gorm:"not null"`
	CreatedBy    int64  `gorm:"not null"`
	CreatedAt    time.Time
}

func (ExpenditureModel) TableName() string { return "expenditures" }

package vehicle

import (
	"time"

	"github.com/google/uuid"
)

// Category is the vehicle class used by the pricing engine.
// This is a closed set, deliberately separate from the free-text model name.
type Category string

const (
	CategoryCityCar   Category = "city_car"
	CategoryElectric  Category = "electric"
	CategorySUV       Category = "suv"
	Category4x4       Category = "4x4"
	CategorySportsCar Category = "sports_car"
)

// FuelType represents the fuel type
type FuelType string

const (
	FuelTypeGasoline FuelType = "gasoline"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeElectric FuelType = "electric"
	FuelTypeHybrid   FuelType = "hybrid"
	FuelTypeLPG      FuelType = "lpg"
)

// Gearbox represents the transmission type
type Gearbox string

const (
	GearboxManual    Gearbox = "manual"
	GearboxAutomatic Gearbox = "automatic"
)

// Owner is a vehicle owner record
type Owner struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Email     *string   `json:"email,omitempty" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// VehicleType describes a commercial vehicle model and its pricing category
type VehicleType struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Brand     string    `json:"brand" db:"brand"`
	Model     string    `json:"model" db:"model"`
	Category  Category  `json:"category" db:"category"`
	FuelType  FuelType  `json:"fuel_type" db:"fuel_type"`
	Gearbox   Gearbox   `json:"gearbox" db:"gearbox"`
	Doors     int       `json:"doors" db:"doors"`
	Seats     int       `json:"seats" db:"seats"`
	PowerHP   int       `json:"power_hp" db:"power_hp"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Registration is a license-plate record
type Registration struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Plate     string    `json:"plate" db:"plate"`
	Country   string    `json:"country" db:"country"`
	IssuedAt  time.Time `json:"issued_at" db:"issued_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Vehicle is a customer vehicle tracked by the workshop.
// OdometerKm only moves forward; UpdateOdometer rejects regressions.
type Vehicle struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OwnerID        uuid.UUID `json:"owner_id" db:"owner_id"`
	VehicleTypeID  uuid.UUID `json:"vehicle_type_id" db:"vehicle_type_id"`
	RegistrationID uuid.UUID `json:"registration_id" db:"registration_id"`
	OdometerKm     int       `json:"odometer_km" db:"odometer_km"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// VehicleDetail joins a vehicle with its owner, type and registration for forms
type VehicleDetail struct {
	Vehicle
	OwnerFirstName string   `json:"owner_first_name" db:"owner_first_name"`
	OwnerLastName  string   `json:"owner_last_name" db:"owner_last_name"`
	Brand          string   `json:"brand" db:"brand"`
	Model          string   `json:"model" db:"model"`
	Category       Category `json:"category" db:"category"`
	Plate          string   `json:"plate" db:"plate"`
}

// CreateOwnerRequest is the request body for creating an owner
type CreateOwnerRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
}

// CreateVehicleTypeRequest is the request body for creating a vehicle type
type CreateVehicleTypeRequest struct {
	Brand    string   `json:"brand" binding:"required"`
	Model    string   `json:"model" binding:"required"`
	Category Category `json:"category" binding:"required"`
	FuelType FuelType `json:"fuel_type" binding:"required"`
	Gearbox  Gearbox  `json:"gearbox" binding:"required"`
	Doors    int      `json:"doors" binding:"min=2,max=5"`
	Seats    int      `json:"seats" binding:"min=1,max=9"`
	PowerHP  int      `json:"power_hp" binding:"min=0"`
}

// CreateRegistrationRequest is the request body for creating a registration
type CreateRegistrationRequest struct {
	Plate    string    `json:"plate" binding:"required"`
	Country  string    `json:"country" binding:"required"`
	IssuedAt time.Time `json:"issued_at" binding:"required"`
}

// CreateVehicleRequest is the request body for creating a vehicle
type CreateVehicleRequest struct {
	OwnerID        uuid.UUID `json:"owner_id" binding:"required"`
	VehicleTypeID  uuid.UUID `json:"vehicle_type_id" binding:"required"`
	RegistrationID uuid.UUID `json:"registration_id" binding:"required"`
	OdometerKm     int       `json:"odometer_km" binding:"min=0"`
}

// UpdateOdometerRequest is the request body for recording a new odometer reading
type UpdateOdometerRequest struct {
	OdometerKm int `json:"odometer_km" binding:"min=0"`
}

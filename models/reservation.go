package models

import "time"

type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(50);not null" json:"phone"`
	PartySize int       `gorm:"not null" json:"party_size"`
	Date      string    `gorm:"type:varchar(10);not null;index" json:"date"`
	Time      string    `gorm:"type:varchar(5);not null" json:"time"`
	Status    string    `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// StartsAt combines the stored date and time in the given location.
func (r Reservation) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", r.Date+" "+r.Time, loc)
}

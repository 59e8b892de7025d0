package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/TommyTam2012/hotel-booking-api/models"
	"github.com/TommyTam2012/hotel-booking-api/utils"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// SeedDays is how far ahead the startup seed prices inventory. Dates past
// the horizon fall back to the default-open policy at query time.
const SeedDays = 30

// seedRemaining is the per-night allotment for seeded dates.
const seedRemaining = 5

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_booking")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase populates the room-type catalog and a SeedDays window of
// nightly inventory. Idempotent: re-running never duplicates or resets rows,
// so decremented remaining counts survive restarts.
func SeedDatabase() {
	roomTypes := []models.RoomType{
		{TypeName: "Standard", Description: "Standard Room", MaxGuests: 2, BasePrice: 680},
		{TypeName: "Deluxe", Description: "Deluxe Room", MaxGuests: 3, BasePrice: 980},
		{TypeName: "Family", Description: "Family Room", MaxGuests: 5, BasePrice: 950},
		{TypeName: "Suite", Description: "Executive Suite", MaxGuests: 4, BasePrice: 1680},
	}

	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		if err := DB.Create(&roomTypes).Error; err != nil {
			log.Printf("warning: failed to seed room types: %v", err)
			return
		}
		log.Println("RoomTypes seeded")
	}

	var all []models.RoomType
	if err := DB.Find(&all).Error; err != nil {
		log.Printf("warning: failed to load room types for inventory seed: %v", err)
		return
	}

	today := utils.Day(time.Now().UTC())
	rows := make([]models.Availability, 0, len(all)*SeedDays)
	for _, rt := range all {
		for i := 0; i < SeedDays; i++ {
			d := utils.AddDays(today, i)
			price := rt.BasePrice
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				price += 100
			}
			rows = append(rows, models.Availability{
				RoomTypeID: rt.ID,
				Day:        utils.FormatDate(d),
				Price:      price,
				Remaining:  seedRemaining,
			})
		}
	}
	if len(rows) > 0 {
		// Existing (room_type, day) rows are left alone.
		if err := DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			log.Printf("warning: failed to seed inventory: %v", err)
			return
		}
	}
	log.Printf("Inventory ensured for %d room types × %d days", len(all), SeedDays)
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.RoomType{},
		&models.Availability{},
		&models.Booking{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

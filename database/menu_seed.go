package database

import (
	"context"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func egp(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// defaultMenu keeps the ids the customer frontend was built against.
var defaultMenu = []models.MenuItem{
	{ID: 1, Name: "Crispy French Fries", Description: "Golden crispy fries served with ketchup and mayonnaise", Price: egp(120), Category: "Appetizers", Image: "https://images.unsplash.com/photo-1573080496219-bb080dd4f877?w=600&q=80", Popular: true},
	{ID: 2, Name: "Buffalo Wings", Description: "Spicy chicken wings tossed in buffalo sauce with ranch dip", Price: egp(260), Category: "Appetizers", Image: "https://images.unsplash.com/photo-1527477396000-e27163b481c2?w=600&q=80", Popular: true, Spicy: 3},
	{ID: 3, Name: "Loaded Cheese Fries", Description: "Crispy fries topped with melted cheese, bacon bits, and sour cream", Price: egp(200), Category: "Appetizers", Image: "https://images.unsplash.com/photo-1571997478779-2adcbbe9ab2f?w=600&q=80", Popular: true},
	{ID: 5, Name: "Grilled Salmon", Description: "Fresh Atlantic salmon with roasted vegetables and lemon butter sauce", Price: egp(500), Category: "Main Course", Image: "https://images.unsplash.com/photo-1467003909585-2f8a72700288?w=600&q=80", Popular: true},
	{ID: 6, Name: "Beef Tenderloin", Description: "Premium cut beef with mashed potatoes and red wine reduction", Price: egp(660), Category: "Main Course", Image: "https://images.unsplash.com/photo-1546833999-b9f581a1996d?w=600&q=80"},
	{ID: 7, Name: "Chicken Tikka Masala", Description: "Tender chicken in creamy tomato curry sauce with basmati rice", Price: egp(380), Category: "Main Course", Image: "https://images.unsplash.com/photo-1631452180519-c014fe946bc7?w=600&q=80", Popular: true, Spicy: 2},
	{ID: 8, Name: "Mushroom Risotto", Description: "Creamy arborio rice with wild mushrooms and parmesan", Price: egp(400), Category: "Main Course", Image: "https://images.unsplash.com/photo-1476124369491-e7addf5db371?w=600&q=80", Popular: true},
	{ID: 9, Name: "Margherita Pizza", Description: "Classic pizza with tomato sauce, mozzarella, and fresh basil", Price: egp(300), Category: "Pizza & Pasta", Image: "https://images.unsplash.com/photo-1574071318508-1cdbab80d002?w=600&q=80", Popular: true},
	{ID: 10, Name: "Pepperoni Pizza", Description: "Traditional pizza topped with pepperoni and cheese", Price: egp(340), Category: "Pizza & Pasta", Image: "https://images.unsplash.com/photo-1628840042765-356cda07504e?w=600&q=80", Popular: true},
	{ID: 11, Name: "Spaghetti Carbonara", Description: "Classic Italian pasta with pancetta, egg, and parmesan", Price: egp(360), Category: "Pizza & Pasta", Image: "https://images.unsplash.com/photo-1588013273468-315fd88ea34c?w=600&q=80"},
	{ID: 12, Name: "Penne Arrabbiata", Description: "Spicy tomato sauce with garlic and red chili peppers", Price: egp(320), Category: "Pizza & Pasta", Image: "https://images.unsplash.com/photo-1551892374-ecf8754cf8b0?w=600&q=80", Spicy: 3},
	{ID: 13, Name: "Chocolate Lava Cake", Description: "Warm chocolate cake with molten center and vanilla ice cream", Price: egp(180), Category: "Desserts", Image: "https://images.unsplash.com/photo-1606313564200-e75d5e30476c?w=600&q=80", Popular: true},
	{ID: 14, Name: "Tiramisu", Description: "Classic Italian dessert with coffee-soaked ladyfingers and mascarpone", Price: egp(160), Category: "Desserts", Image: "https://images.unsplash.com/photo-1571877227200-a0d98ea607e9?w=600&q=80"},
	{ID: 15, Name: "BBQ Ribs", Description: "Fall-off-the-bone pork ribs with coleslaw and fries", Price: egp(540), Category: "Main Course", Image: "https://images.unsplash.com/photo-1544025162-d76694265947?w=600&q=80"},
	{ID: 16, Name: "Vegetable Stir Fry", Description: "Mixed vegetables in garlic sauce with jasmine rice", Price: egp(320), Category: "Main Course", Image: "https://images.unsplash.com/photo-1512058564366-18510be2db19?w=600&q=80"},
}

// SeedMenu inserts the default catalogue when the menu table is empty.
func SeedMenu(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := make([]models.MenuItem, len(defaultMenu))
	copy(items, defaultMenu)
	if err := db.WithContext(ctx).Create(&items).Error; err != nil {
		return err
	}
	utils.InfoLogger.Infof("Seeded %d menu items", len(items))
	return nil
}

package admin

import (
	"net/http"
	"time"

	"art-showcase/database"
	"art-showcase/internal/domain/artworks"
	"art-showcase/internal/domain/contact"
	"art-showcase/internal/domain/orders"
	"art-showcase/internal/domain/users"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type AdminUser struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	AuthProvider string     `json:"auth_provider"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type AdminStats struct {
	Artworks       *artworks.Stats  `json:"artworks"`
	UnreadMessages int64            `json:"unread_messages"`
	TotalRevenue   float64          `json:"total_revenue"`
	RecentRevenue  float64          `json:"recent_revenue"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	Users          int64            `json:"users"`
}

// ------------------------------
// GET /api/admin/dashboard
// ------------------------------
func Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	db := database.DB.WithContext(ctx)
	stats := AdminStats{OrdersByStatus: map[string]int64{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := artworks.NewStore(database.DB).Stats(gctx)
		stats.Artworks = s
		return err
	})
	g.Go(func() error {
		return db.Model(&contact.Message{}).Where("read = ?", false).Count(&stats.UnreadMessages).Error
	})
	g.Go(func() error {
		paid := []string{orders.StatusPaid, orders.StatusConflict}
		if err := db.Model(&orders.Order{}).
			Where("status IN ?", paid).
			Select("COALESCE(SUM(amount_eur), 0)").Scan(&stats.TotalRevenue).Error; err != nil {
			return err
		}

		thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
		if err := db.Model(&orders.Order{}).
			Where("status IN ? AND paid_at >= ?", paid, thirtyDaysAgo).
			Select("COALESCE(SUM(amount_eur), 0)").Scan(&stats.RecentRevenue).Error; err != nil {
			return err
		}

		type statusCount struct {
			Status string
			Count  int64
		}
		var counts []statusCount
		if err := db.Model(&orders.Order{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&counts).Error; err != nil {
			return err
		}
		for _, sc := range counts {
			stats.OrdersByStatus[sc.Status] = sc.Count
		}
		return nil
	})
	g.Go(func() error {
		return db.Model(&users.User{}).Count(&stats.Users).Error
	})

	if err := g.Wait(); err != nil {
		body := gin.H{"error": "Admin dashboard failed"}
		if gin.Mode() != gin.ReleaseMode {
			body["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GET /api/admin/users
func ListUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.WithContext(c.Request.Context()).Order("created_at ASC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		out = append(out, AdminUser{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			Role:         u.Role,
			AuthProvider: u.AuthProvider,
			LastLoginAt:  u.LastLoginAt,
			CreatedAt:    u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"users": out})
}

// GET /api/admin/orders?status=paid
func ListOrders(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", orders.StatusPending, orders.StatusPaid, orders.StatusExpired, orders.StatusConflict:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}

	list, err := orders.NewStore(database.DB).List(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": list})
}

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bloghub/blog-management/internal/auth"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}

		if clearData {
			for _, table := range []string{"refresh_tokens", "user_permissions", "posts", "permissions", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		// Seeded credentials go through the same hasher the login flow uses
		hasher := auth.NewPasswordHasher(cfg.Security.BCryptCost)
		hash, err := hasher.Hash("password")
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		seedUser(db, "admin@blog.local", hash)
		seedUser(db, "author@blog.local", hash)

		permissions := []struct {
			Name string
			Desc string
		}{
			{auth.PermissionAdmin, "full administrator"},
			{auth.PermissionReadPosts, "Can read posts"},
			{auth.PermissionCreatePosts, "Can create posts"},
			{auth.PermissionEditPosts, "Can edit posts"},
			{auth.PermissionDeletePosts, "Can delete posts"},
		}

		for _, p := range permissions {
			var pid int64
			row := db.Raw("SELECT id FROM permissions WHERE name = ?", p.Name).Row()
			if err := row.Scan(&pid); err != nil {
				if err := db.Exec("INSERT INTO permissions (name, description, created_at) VALUES (?, ?, now())", p.Name, p.Desc).Error; err != nil {
					log.Fatalf("failed to insert permission %s: %v", p.Name, err)
				}
			}
		}

		adminID := lookupUserID(db, "admin@blog.local")
		for _, p := range permissions {
			grantPermission(db, adminID, p.Name)
		}
		fmt.Println("Granted all permissions to admin user")

		authorID := lookupUserID(db, "author@blog.local")
		for _, name := range []string{auth.PermissionReadPosts, auth.PermissionCreatePosts, auth.PermissionEditPosts} {
			grantPermission(db, authorID, name)
		}
		fmt.Println("Granted author permissions to author user")

		var postCount int64
		if err := db.Raw("SELECT COUNT(1) FROM posts").Row().Scan(&postCount); err == nil && postCount == 0 {
			posts := []struct {
				Title string
				Body  string
			}{
				{"Welcome to the blog", "This is the first seeded post."},
				{"Second post", "More seeded content for development."},
			}
			for _, p := range posts {
				if err := db.Exec("INSERT INTO posts (author_id, title, body, published, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", authorID, p.Title, p.Body).Error; err != nil {
					log.Fatalf("failed to insert post %q: %v", p.Title, err)
				}
			}
			fmt.Println("Seeded sample posts")
		}

		fmt.Println("Seeding complete")
	},
}

func seedUser(db *gorm.DB, email, passwordHash string) {
	var exists int
	row := db.Raw("SELECT 1 FROM users WHERE email = ?", email).Row()
	if err := row.Scan(&exists); err == nil {
		fmt.Printf("user %s already exists; will ensure permissions\n", email)
		return
	}

	if err := db.Exec("INSERT INTO users (email, password_hash, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())", email, passwordHash).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
}

func lookupUserID(db *gorm.DB, email string) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err != nil {
		log.Fatalf("failed to lookup user id for %s: %v", email, err)
	}
	return id
}

func grantPermission(db *gorm.DB, userID int64, permName string) {
	var pid int64
	if err := db.Raw("SELECT id FROM permissions WHERE name = ?", permName).Row().Scan(&pid); err != nil {
		log.Fatalf("permission not found %s: %v", permName, err)
	}

	var exists int
	if err := db.Raw("SELECT 1 FROM user_permissions WHERE user_id = ? AND permission_id = ?", userID, pid).Row().Scan(&exists); err == nil {
		return
	}

	if err := db.Exec("INSERT INTO user_permissions (user_id, permission_id, created_at) VALUES (?, ?, now())", userID, pid).Error; err != nil {
		log.Fatalf("failed to grant permission %s: %v", permName, err)
	}
}

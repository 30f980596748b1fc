// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"lifelog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder builds domain entities and persists them to the database.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	now := time.Now().UnixNano()
	gofakeit.Seed(now)
	return &Seeder{db: db, rng: rand.New(rand.NewSource(now))}
}

// ClearAll deletes all seeded data. Dependent tables go first so foreign
// keys never dangle mid-run.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.Like{}, &models.Comment{}, &models.Message{},
		&models.Mood{}, &models.Friendship{}, &models.Post{}, &models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", table, err)
		}
	}
	log.Println("✓ Existing data cleared")
	return nil
}

// Run seeds a full social mesh: users, friendships, posts, comments, likes,
// moods and messages.
func (s *Seeder) Run(opts Options) error {
	log.Printf("🌱 Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created (password: password123)", len(users))

	if err := s.createFriendships(users); err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}

	posts, err := s.createPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := s.createEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	if err := s.createMoods(users); err != nil {
		return fmt.Errorf("failed to create moods: %w", err)
	}
	if err := s.createMessages(users); err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}

	log.Println("🎉 Seeding complete")
	return nil
}

func (s *Seeder) createUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username:    fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(10, 999)),
			Email:       gofakeit.Email(),
			Password:    string(hashed),
			DisplayName: gofakeit.Name(),
			AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			Bio:         gofakeit.Sentence(10),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createFriendships connects each user to a handful of others. Most edges
// are accepted so feeds have content; a few stay pending or rejected.
func (s *Seeder) createFriendships(users []*models.User) error {
	created := 0
	for i, user := range users {
		numFriends := s.rng.Intn(5) + 2
		for j := 0; j < numFriends; j++ {
			other := users[s.rng.Intn(len(users))]
			if other.ID == user.ID {
				continue
			}
			// Skip if an edge already exists in either direction.
			var count int64
			s.db.Model(&models.Friendship{}).
				Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
					user.ID, other.ID, other.ID, user.ID).
				Count(&count)
			if count > 0 {
				continue
			}

			status := models.FriendshipStatusAccepted
			switch {
			case i%7 == 3 && j == 0:
				status = models.FriendshipStatusPending
			case i%11 == 5 && j == 0:
				status = models.FriendshipStatusRejected
			}
			friendship := &models.Friendship{
				RequesterID: user.ID,
				AddresseeID: other.ID,
				Status:      status,
			}
			if err := s.db.Create(friendship).Error; err != nil {
				return err
			}
			created++
		}
	}
	log.Printf("✓ %d friendships created", created)
	return nil
}

func (s *Seeder) createPosts(users []*models.User, n int) ([]*models.Post, error) {
	visibilities := []models.Visibility{
		models.VisibilityPublic, models.VisibilityPublic, models.VisibilityPublic,
		models.VisibilityFriends, models.VisibilityFriends,
		models.VisibilityPrivate,
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		post := &models.Post{
			UserID:     author.ID,
			Content:    gofakeit.Paragraph(1, 3, 8, "\n"),
			Visibility: visibilities[s.rng.Intn(len(visibilities))],
			CreatedAt:  s.pastTime(30),
		}
		numImages := s.rng.Intn(models.MaxImagesPerPost + 1)
		for j := 0; j < numImages; j++ {
			post.ImageURLs = append(post.ImageURLs,
				fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()))
		}
		if s.rng.Intn(4) == 0 {
			post.LocationName = gofakeit.City()
			post.ShowLocation = true
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// createEngagement sprinkles comments and likes across the posts.
func (s *Seeder) createEngagement(users []*models.User, posts []*models.Post) error {
	comments, likes := 0, 0
	for _, post := range posts {
		numComments := s.rng.Intn(4)
		for j := 0; j < numComments; j++ {
			comment := &models.Comment{
				PostID:    post.ID,
				UserID:    users[s.rng.Intn(len(users))].ID,
				Content:   gofakeit.Sentence(s.rng.Intn(10) + 3),
				CreatedAt: post.CreatedAt.Add(time.Duration(j+1) * time.Hour),
			}
			if err := s.db.Create(comment).Error; err != nil {
				return err
			}
			comments++
		}

		numLikes := s.rng.Intn(len(users)/2 + 1)
		seen := make(map[uint]bool)
		for j := 0; j < numLikes; j++ {
			liker := users[s.rng.Intn(len(users))]
			if seen[liker.ID] {
				continue
			}
			seen[liker.ID] = true
			like := &models.Like{PostID: post.ID, UserID: liker.ID}
			if err := s.db.Create(like).Error; err != nil {
				return err
			}
			likes++
		}
	}
	log.Printf("✓ %d comments and %d likes created", comments, likes)
	return nil
}

func (s *Seeder) createMoods(users []*models.User) error {
	moodTypes := []models.MoodType{
		models.MoodHappy, models.MoodSmile, models.MoodNeutral,
		models.MoodSad, models.MoodAngry,
	}
	created := 0
	for _, user := range users {
		// A mood entry for each of the last few days, plus one for today.
		days := s.rng.Intn(6) + 1
		for d := days; d >= 0; d-- {
			mood := &models.Mood{
				UserID:    user.ID,
				MoodType:  moodTypes[s.rng.Intn(len(moodTypes))],
				CreatedAt: time.Now().AddDate(0, 0, -d).Add(-time.Duration(s.rng.Intn(8)) * time.Hour),
			}
			if s.rng.Intn(3) == 0 {
				mood.Note = gofakeit.Sentence(6)
			}
			if err := s.db.Create(mood).Error; err != nil {
				return err
			}
			created++
		}
	}
	log.Printf("✓ %d moods created", created)
	return nil
}

// createMessages builds short conversations between accepted friends.
func (s *Seeder) createMessages(users []*models.User) error {
	var friendships []models.Friendship
	if err := s.db.Where("status = ?", models.FriendshipStatusAccepted).Find(&friendships).Error; err != nil {
		return err
	}

	created := 0
	for _, f := range friendships {
		if s.rng.Intn(2) == 0 {
			continue
		}
		numMessages := s.rng.Intn(6) + 2
		base := s.pastTime(7)
		for j := 0; j < numMessages; j++ {
			sender, receiver := f.RequesterID, f.AddresseeID
			if j%2 == 1 {
				sender, receiver = receiver, sender
			}
			message := &models.Message{
				SenderID:   sender,
				ReceiverID: receiver,
				Content:    gofakeit.HipsterSentence(s.rng.Intn(8) + 2),
				Read:       j < numMessages-1,
				CreatedAt:  base.Add(time.Duration(j) * time.Minute * 7),
			}
			if err := s.db.Create(message).Error; err != nil {
				return err
			}
			created++
		}
	}
	log.Printf("✓ %d messages created", created)
	return nil
}

// pastTime returns a random moment within the last maxDays days.
func (s *Seeder) pastTime(maxDays int) time.Time {
	daysBack := s.rng.Intn(maxDays)
	hoursBack := s.rng.Intn(24)
	minsBack := s.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

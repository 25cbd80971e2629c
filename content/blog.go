// api/content/blog.go
package content

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Post is one markdown article from the content directory. The body is
// served raw; the frontend renders the markdown.
type Post struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Body        string   `json:"body"`
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Image       string   `yaml:"image"`
	Tags        []string `yaml:"tags"`
}

// Library holds the parsed posts, loaded once at startup.
type Library struct {
	posts  []Post
	bySlug map[string]Post
}

// LoadLibrary reads every .md file in dir. A missing directory is an
// empty blog, not an error.
func LoadLibrary(dir string) *Library {
	lib := &Library{bySlug: make(map[string]Post)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error reading content directory %s: %v", dir, err)
		}
		return lib
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("Error reading post %s: %v", entry.Name(), err)
			continue
		}
		post, err := ParsePost(strings.TrimSuffix(entry.Name(), ".md"), string(data))
		if err != nil {
			log.Printf("Skipping post %s: %v", entry.Name(), err)
			continue
		}
		lib.posts = append(lib.posts, post)
		lib.bySlug[post.Slug] = post
	}

	// Newest first; dates are ISO strings so plain string compare works.
	sort.SliceStable(lib.posts, func(i, j int) bool { return lib.posts[i].Date > lib.posts[j].Date })
	log.Printf("Loaded %d blog posts from %s", len(lib.posts), dir)
	return lib
}

// ParsePost splits "---" delimited YAML front matter from the markdown
// body. A file without front matter becomes a post with the slug as
// title.
func ParsePost(slug, raw string) (Post, error) {
	post := Post{Slug: slug, Title: slug, Body: raw}

	if !strings.HasPrefix(raw, "---") {
		return post, nil
	}
	rest := raw[3:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return Post{}, fmt.Errorf("unterminated front matter")
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return Post{}, fmt.Errorf("invalid front matter: %w", err)
	}

	// Drop the remainder of the delimiter line plus one blank line.
	body := rest[end+4:]
	if i := strings.Index(body, "\n"); i >= 0 && strings.TrimSpace(body[:i]) == "" {
		body = body[i+1:]
	}
	body = strings.TrimPrefix(body, "\n")

	if fm.Title != "" {
		post.Title = fm.Title
	}
	post.Description = fm.Description
	post.Date = fm.Date
	post.Image = fm.Image
	post.Tags = fm.Tags
	post.Body = body
	return post, nil
}

// List returns all posts, newest first.
func (l *Library) List() []Post {
	return l.posts
}

// Get returns the post for a slug.
func (l *Library) Get(slug string) (Post, bool) {
	p, ok := l.bySlug[slug]
	return p, ok
}

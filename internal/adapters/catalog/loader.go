package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/recipe-resolver/internal/domain/recipe"
)

// Result is the outcome of loading a catalog directory
type Result struct {
	Recipes []*recipe.Recipe
	Files   []string
}

// Index builds a recipe index from the loaded recipes
func (r *Result) Index() *recipe.Index {
	return recipe.NewIndex(r.Recipes)
}

// Loader reads recipe catalogs from files matching glob patterns under a root
type Loader struct {
	fsys     fs.FS
	root     string
	patterns []string
}

// NewLoader creates a loader rooted at dir
func NewLoader(dir string, patterns []string) *Loader {
	return NewFSLoader(os.DirFS(dir), dir, patterns)
}

// NewFSLoader creates a loader over an arbitrary filesystem. root is only
// used in error messages.
func NewFSLoader(fsys fs.FS, root string, patterns []string) *Loader {
	return &Loader{fsys: fsys, root: root, patterns: patterns}
}

// Root returns the directory the loader reads from
func (l *Loader) Root() string {
	return l.root
}

// Patterns returns the glob patterns the loader matches
func (l *Loader) Patterns() []string {
	return l.patterns
}

// Matches reports whether the slash-separated relative path is a catalog file
func (l *Loader) Matches(rel string) bool {
	for _, pattern := range l.patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Load reads every matching file. Files are read in lexical path order and
// recipes keep their in-file order, which together define source order.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	files, err := l.discover()
	if err != nil {
		return nil, err
	}

	recipes := make([]*recipe.Recipe, 0)
	origin := make(map[string]string)

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		docs, err := l.readFile(name)
		if err != nil {
			return nil, err
		}

		for _, doc := range docs {
			if doc.ID == "" {
				return nil, fmt.Errorf("%s: recipe without id", path.Join(l.root, name))
			}
			if first, dup := origin[doc.ID]; dup {
				return nil, &recipe.ErrDuplicateRecipe{
					RecipeID: doc.ID,
					Source:   fmt.Sprintf("%s (first defined in %s)", name, first),
				}
			}
			origin[doc.ID] = name
			recipes = append(recipes, doc.ToRecipe())
		}
	}

	if err := recipe.Validate(recipes); err != nil {
		return nil, err
	}

	return &Result{Recipes: recipes, Files: files}, nil
}

func (l *Loader) discover() ([]string, error) {
	seen := make(map[string]bool)
	files := make([]string, 0)

	for _, pattern := range l.patterns {
		matches, err := doublestar.Glob(l.fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (l *Loader) readFile(name string) ([]RecipeDocument, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path.Join(l.root, name), err)
	}

	docs, err := Decode(name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path.Join(l.root, name), err)
	}
	return docs, nil
}

// Decode parses catalog data, choosing the encoding from the file extension.
// A bare list of recipes is accepted as well as a document with a recipes key.
func Decode(name string, data []byte) ([]RecipeDocument, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		if data[0] == '[' {
			var docs []RecipeDocument
			if err := json.Unmarshal(data, &docs); err != nil {
				return nil, err
			}
			return docs, nil
		}
		var file File
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, err
		}
		return file.Recipes, nil

	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			var docs []RecipeDocument
			if err := node.Decode(&docs); err != nil {
				return nil, err
			}
			return docs, nil
		}
		var file File
		if err := node.Decode(&file); err != nil {
			return nil, err
		}
		return file.Recipes, nil

	default:
		return nil, fmt.Errorf("unsupported catalog extension %q", path.Ext(name))
	}
}

// Encode writes recipes as a catalog document in the encoding matching name
func Encode(name string, recipes []*recipe.Recipe) ([]byte, error) {
	file := File{Recipes: make([]RecipeDocument, 0, len(recipes))}
	for _, r := range recipes {
		file.Recipes = append(file.Recipes, FromRecipe(r))
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return json.MarshalIndent(file, "", "  ")
	case ".yaml", ".yml":
		return yaml.Marshal(file)
	default:
		return nil, fmt.Errorf("unsupported catalog extension %q", path.Ext(name))
	}
}

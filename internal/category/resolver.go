package category

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// PromptFunc supplies a category for an app the mapping does not know
// yet. The existing categories are passed so interactive prompts can
// show them as a hint. Returning an empty string means "no answer";
// the resolver retries a bounded number of times.
type PromptFunc func(app string, existing []string) (string, error)

// maxPromptAttempts bounds retries on empty answers so non-interactive
// runs terminate instead of looping.
const maxPromptAttempts = 3

// Resolver maps app names to user-defined category labels. The mapping
// is loaded once, mutated in memory, and persisted back to its JSON file
// on every change, so a crash loses at most one decision.
type Resolver struct {
	path      string
	mapping   map[string]string
	onUnknown PromptFunc
	warned    bool
}

// LoadResolver reads the mapping file. A missing file yields an empty
// mapping; an unreadable or corrupt file is an error, since silently
// starting fresh would re-prompt for every known app.
func LoadResolver(path string, onUnknown PromptFunc) (*Resolver, error) {
	r := &Resolver{
		path:      path,
		mapping:   make(map[string]string),
		onUnknown: onUnknown,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, errors.Wrap(err, "failed to read category file")
	}

	if err := json.Unmarshal(data, &r.mapping); err != nil {
		return nil, errors.Wrapf(err, "failed to parse category file %s", path)
	}

	return r, nil
}

// Resolve returns the category for an app, prompting through the
// injected strategy when the app is unknown. A successful answer is
// stored and persisted, so the same app never prompts twice in one run.
func (r *Resolver) Resolve(app string) (string, error) {
	if cat, ok := r.mapping[app]; ok {
		return cat, nil
	}

	if r.onUnknown == nil {
		return "", fmt.Errorf("no category mapped for %q and no resolution strategy provided", app)
	}

	existing := r.Categories()
	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		answer, err := r.onUnknown(app, existing)
		if err != nil {
			return "", errors.Wrapf(err, "category prompt failed for %q", app)
		}

		answer = strings.TrimSpace(answer)
		if answer == "" {
			continue
		}

		r.mapping[app] = answer
		r.persist()
		return answer, nil
	}

	return "", fmt.Errorf("no category provided for %q after %d attempts", app, maxPromptAttempts)
}

// EditMapping overrides the category for an app and persists
// immediately. Unlike Resolve it reports a persistence failure to the
// caller instead of degrading.
func (r *Resolver) EditMapping(app, category string) error {
	category = strings.TrimSpace(category)
	if app == "" || category == "" {
		return fmt.Errorf("app and category must be non-empty")
	}

	r.mapping[app] = category
	if err := r.save(); err != nil {
		return errors.Wrap(err, "failed to persist category mapping")
	}
	return nil
}

// Known reports whether an app already has a category.
func (r *Resolver) Known(app string) bool {
	_, ok := r.mapping[app]
	return ok
}

// Categories returns the sorted set of distinct category labels.
func (r *Resolver) Categories() []string {
	seen := make(map[string]struct{}, len(r.mapping))
	for _, cat := range r.mapping {
		seen[cat] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of mapped apps.
func (r *Resolver) Len() int {
	return len(r.mapping)
}

// persist saves the mapping, degrading to in-memory-only with a single
// warning when the backing file is unwritable.
func (r *Resolver) persist() {
	if err := r.save(); err != nil && !r.warned {
		r.warned = true
		log.Printf("Warning: category mapping is not durable: %v", err)
	}
}

func (r *Resolver) save() error {
	data, err := json.MarshalIndent(r.mapping, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, append(data, '\n'), 0644)
}

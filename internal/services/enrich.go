package services

import (
	"context"
	"html/template"
	"sync"
	"traveltales/internal/models"
	"traveltales/internal/utils"

	"golang.org/x/sync/errgroup"
)

// enrichWorkers bounds the per-page fan-out.
const enrichWorkers = 4

// BlogView is the denormalized per-post view model handed to the
// templates and the search page.
type BlogView struct {
	models.Blog
	Author      string
	ContentHTML template.HTML
	IsOwn       bool
	IsFollowing bool
	Likes       int64
	Dislikes    int64
	MyReaction  models.ReactionType
	CountryMeta *CountryInfo // nil when the external lookup failed
}

// Enricher assembles view models for a page of blogs: ownership and
// follow flags, reaction counts, the viewer's own reaction, and
// best-effort country metadata.
type Enricher struct {
	social    *SocialService
	reactions *ReactionService
	countries *CountryService
}

func NewEnricher(social *SocialService, reactions *ReactionService, countries *CountryService) *Enricher {
	return &Enricher{
		social:    social,
		reactions: reactions,
		countries: countries,
	}
}

// EnrichPage builds one BlogView per blog. The independent lookups are
// fanned out over a bounded group; all of them complete (or default)
// before the page is assembled. Country lookups are deduplicated with a
// map scoped to this call only — no cross-request memoization. External
// failures leave Country nil and never fail the page; store failures do.
func (e *Enricher) EnrichPage(ctx context.Context, viewerID uint, blogs []models.Blog) ([]BlogView, error) {
	views := make([]BlogView, len(blogs))
	if len(blogs) == 0 {
		return views, nil
	}

	countryInfo := e.lookupCountries(ctx, blogs)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(enrichWorkers)
	for i := range blogs {
		g.Go(func() error {
			blog := blogs[i]
			view := BlogView{
				Blog:        blog,
				Author:      blog.User.Name,
				ContentHTML: utils.RenderMarkdown(blog.Content),
				CountryMeta: countryInfo[blog.Country],
			}

			likes, err := e.reactions.CountReactions(blog.ID, models.ReactionLike)
			if err != nil {
				return err
			}
			view.Likes = likes

			dislikes, err := e.reactions.CountReactions(blog.ID, models.ReactionDislike)
			if err != nil {
				return err
			}
			view.Dislikes = dislikes

			if viewerID != 0 {
				view.IsOwn = blog.UserID == viewerID

				reaction, err := e.reactions.ReactionOf(viewerID, blog.ID)
				if err != nil {
					return err
				}
				view.MyReaction = reaction

				if !view.IsOwn {
					following, err := e.social.IsFollowing(viewerID, blog.UserID)
					if err != nil {
						return err
					}
					view.IsFollowing = following
				}
			}

			views[i] = view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

// lookupCountries fetches metadata once per distinct country on the
// page. Lookup errors are swallowed; the country just stays unadorned.
func (e *Enricher) lookupCountries(ctx context.Context, blogs []models.Blog) map[string]*CountryInfo {
	var mu sync.Mutex
	found := make(map[string]*CountryInfo)

	seen := make(map[string]bool)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichWorkers)
	for _, blog := range blogs {
		name := blog.Country
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		g.Go(func() error {
			info, err := e.countries.Lookup(gctx, name)
			if err != nil {
				return nil // best-effort
			}
			mu.Lock()
			found[name] = info
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return found
}

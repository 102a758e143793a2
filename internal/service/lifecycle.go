package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
)

// createProject persists the project and links it to its creator.
func createProject(ctx context.Context, st store.Store, p *model.Project) error {
	return st.InTx(ctx, func(tx store.Store) error {
		if err := tx.CreateProject(ctx, p); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return fmt.Errorf("project id collision: %w", err)
			}
			return err
		}
		if err := tx.AddCreatedProject(ctx, p.CreatorID, p.ID); err != nil {
			return notFound(err, ErrUserNotFound)
		}
		return nil
	})
}

// deleteProject removes every reference to the project and then the project
// itself. authorize runs against the current row inside the transaction.
func deleteProject(ctx context.Context, st store.Store, id string, authorize func(*model.Project) error) (*model.Project, error) {
	var deleted *model.Project

	err := st.InTx(ctx, func(tx store.Store) error {
		p, err := tx.LockProject(ctx, id)
		if err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		if authorize != nil {
			if err := authorize(p); err != nil {
				return err
			}
		}

		// A missing creator or backer account leaves nothing to unlink.
		if err := tx.RemoveCreatedProject(ctx, p.CreatorID, p.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("unlink creator: %w", err)
		}
		for _, userID := range p.DistinctBackerIDs() {
			if err := tx.RemoveBackedProject(ctx, userID, p.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("unlink backer %s: %w", userID, err)
			}
		}
		if err := tx.RemoveSavedProjectEverywhere(ctx, p.ID); err != nil {
			return fmt.Errorf("unlink bookmarks: %w", err)
		}
		if err := tx.RemoveRelatedProject(ctx, p.ID); err != nil {
			return fmt.Errorf("unlink events: %w", err)
		}
		if err := tx.RemoveCollaborationProject(ctx, p.ID); err != nil {
			return fmt.Errorf("unlink collaborations: %w", err)
		}

		if err := tx.DeleteProject(ctx, p.ID); err != nil {
			return notFound(err, ErrProjectNotFound)
		}

		deleted = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

func requireCreator(requesterID string) func(*model.Project) error {
	return func(p *model.Project) error {
		if requesterID == "" {
			return ErrUnauthorized
		}
		if p.CreatorID != requesterID {
			return ErrForbidden
		}
		return nil
	}
}

// validateProject checks the invariants every stored project must satisfy.
func validateProject(p *model.Project) error {
	var c fieldChecker
	c.require(p.Title != "", "title")
	c.require(p.Description != "", "description")
	c.require(p.Category != "", "category")
	c.require(p.Goal > 0, "goal")
	c.require(!p.Deadline.IsZero(), "deadline")
	c.require(p.ImageURL != "", "imageUrl")
	if p.Status != "" {
		c.require(p.Status.IsValid(), "status")
	}
	return c.err()
}

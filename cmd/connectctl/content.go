package main

import (
	"context"
	"io"
	"time"

	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) skillsCmd() *cobra.Command {
	cmd := protect(&cobra.Command{
		Use:   "skills",
		Short: "Manage your skills",
	})

	var term string
	list := &cobra.Command{
		Use:   "list",
		Short: "Show your skills and the ones you can add",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := a.store.Get()
			view, err := a.skillService().UserSkills(cmd.Context(), sess, sess.UserID, term)
			if err != nil {
				return err
			}
			return render(a.out, view)
		},
	}
	list.Flags().StringVar(&term, "search", "", "Filter the skills you can add")

	assign := &cobra.Command{
		Use:   "add <skillId>",
		Short: "Add a catalog skill to your profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skillID, err := argID(args, 0, "skillId")
			if err != nil {
				return err
			}
			sess := a.store.Get()
			view, err := a.skillService().AssignSkill(cmd.Context(), sess, sess.UserID, skillID)
			if err != nil {
				return err
			}
			return render(a.out, view)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <skillId>",
		Short: "Remove a skill from your profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skillID, err := argID(args, 0, "skillId")
			if err != nil {
				return err
			}
			sess := a.store.Get()
			if err := a.skillService().RemoveSkill(cmd.Context(), sess, sess.UserID, skillID); err != nil {
				return err
			}
			say(a.out, "Skill removed.")
			return nil
		},
	}

	cmd.AddCommand(list, assign, remove, a.catalogCmd())
	return cmd
}

// catalogCmd is the admin's skill catalog
func (a *app) catalogCmd() *cobra.Command {
	cmd := protect(&cobra.Command{
		Use:   "catalog",
		Short: "Manage the skill catalog (admin)",
	}, models.RoleAdmin)

	list := &cobra.Command{
		Use:   "list",
		Short: "List every skill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			skills, err := a.skillService().Catalog(cmd.Context())
			if err != nil {
				return err
			}
			return render(a.out, map[string]any{"skills": skills})
		},
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skill, err := a.skillService().AddSkill(cmd.Context(), a.store.Get(), &models.AddSkillRequest{SkillName: args[0]})
			if err != nil {
				return err
			}
			return render(a.out, skill)
		},
	}

	del := &cobra.Command{
		Use:   "delete <skillId>",
		Short: "Delete a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skillID, err := argID(args, 0, "skillId")
			if err != nil {
				return err
			}
			if err := a.skillService().DeleteSkill(cmd.Context(), a.store.Get(), skillID); err != nil {
				return err
			}
			say(a.out, "Skill deleted.")
			return nil
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}

func (a *app) storiesCmd() *cobra.Command {
	cmd := protect(&cobra.Command{
		Use:   "stories",
		Short: "Read and publish stories",
	})

	var author int
	var mine bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List stories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := a.store.Get()
			authorID := author
			if mine {
				authorID = sess.UserID
			}
			stories, err := a.storyService().List(cmd.Context(), sess, authorID)
			if err != nil {
				return err
			}
			return render(a.out, map[string]any{"stories": stories})
		},
	}
	list.Flags().IntVar(&author, "author", 0, "Only stories by this user")
	list.Flags().BoolVar(&mine, "mine", false, "Only your own stories")

	show := &cobra.Command{
		Use:   "show <storyId>",
		Short: "Read one story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storyID, err := argID(args, 0, "storyId")
			if err != nil {
				return err
			}
			story, err := a.storyService().Get(cmd.Context(), a.store.Get(), storyID)
			if err != nil {
				return err
			}
			return render(a.out, story)
		},
	}

	var (
		req       models.CreateStoryRequest
		thumbnail string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Publish a story",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			attachment, err := readAttachment(thumbnail)
			if err != nil {
				return err
			}
			story, err := a.storyService().Create(cmd.Context(), a.store.Get(), &req, attachment)
			if err != nil {
				return err
			}
			return render(a.out, story)
		},
	}
	flags := create.Flags()
	flags.StringVar(&req.StoryName, "title", "", "Story title")
	flags.StringVar(&req.StoryDescription, "description", "", "Short description")
	flags.StringVar(&req.Content, "content", "", "Story body (rich text)")
	flags.IntVar(&req.SuggestedSkill, "skill", 0, "Related skill id")
	flags.StringVar(&thumbnail, "thumbnail", "", "Path of a thumbnail image")

	del := &cobra.Command{
		Use:   "delete <storyId>",
		Short: "Delete one of your stories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storyID, err := argID(args, 0, "storyId")
			if err != nil {
				return err
			}
			if err := a.storyService().Delete(cmd.Context(), a.store.Get(), storyID); err != nil {
				return err
			}
			say(a.out, "Story deleted.")
			return nil
		},
	}

	cmd.AddCommand(list, show, create, del)
	return cmd
}

func (a *app) resourcesCmd() *cobra.Command {
	cmd := protect(&cobra.Command{
		Use:   "resources",
		Short: "Browse career resources",
	})

	var (
		term    string
		skillID int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "Search resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := a.resourceService().List(cmd.Context(), a.store.Get(), term, skillID)
			if err != nil {
				return err
			}
			return render(a.out, view)
		},
	}
	list.Flags().StringVar(&term, "search", "", "Match name or description")
	list.Flags().IntVar(&skillID, "skill", 0, "Only resources for this skill id")

	mine := protect(&cobra.Command{
		Use:   "mine",
		Short: "List the resources you published (mentor)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resources, err := a.resourceService().Mine(cmd.Context(), a.store.Get())
			if err != nil {
				return err
			}
			return render(a.out, map[string]any{"resources": resources})
		},
	}, models.RoleMentor)

	var (
		req          models.CreateResourceRequest
		resourceType string
	)
	create := protect(&cobra.Command{
		Use:   "create",
		Short: "Publish a resource (mentor)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Type = models.ResourceType(resourceType)
			resource, err := a.resourceService().Create(cmd.Context(), a.store.Get(), &req)
			if err != nil {
				return err
			}
			return render(a.out, resource)
		},
	}, models.RoleMentor)
	flags := create.Flags()
	flags.StringVar(&resourceType, "type", string(models.ResourceArticle), "article, video, pdf or course")
	flags.StringVar(&req.ResourceName, "name", "", "Resource name")
	flags.StringVar(&req.ResourceDescription, "description", "", "Short description")
	flags.StringVar(&req.Content, "content", "", "Link or body of the resource")
	flags.IntVar(&req.SuggestedSkill, "skill", 0, "Related skill id")

	del := protect(&cobra.Command{
		Use:   "delete <resourceId>",
		Short: "Delete one of your resources (mentor)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceID, err := argID(args, 0, "resourceId")
			if err != nil {
				return err
			}
			if err := a.resourceService().Delete(cmd.Context(), a.store.Get(), resourceID); err != nil {
				return err
			}
			say(a.out, "Resource deleted.")
			return nil
		},
	}, models.RoleMentor)

	cmd.AddCommand(list, mine, create, del)
	return cmd
}

func (a *app) jobsCmd() *cobra.Command {
	cmd := protect(&cobra.Command{
		Use:   "jobs",
		Short: "Job listings matched to your skills",
	})

	var (
		follow bool
		maxAge time.Duration
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List your job postings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := a.jobService()
			sess := a.store.Get()
			if !follow {
				view, err := svc.List(cmd.Context(), sess)
				if err != nil {
					return err
				}
				return printJobs(a.out, view)
			}

			var renderErr error
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			svc.Refresher(sess, maxAge).Run(ctx, func(view *models.JobsView) {
				if err := printJobs(a.out, view); err != nil {
					renderErr = err
					cancel()
				}
			}, func(err error) {
				say(cmd.ErrOrStderr(), "%s", apperrors.UserMessage(err))
			})
			return renderErr
		},
	}
	list.Flags().BoolVarP(&follow, "follow", "f", false, "Keep the list fresh until interrupted")
	list.Flags().DurationVar(&maxAge, "refresh", services.JobsRefreshMaxAge, "Re-fetch once the list is older than this while following")

	var req models.CreateJobRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Save a job posting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, err := a.jobService().Create(cmd.Context(), a.store.Get(), &req)
			if err != nil {
				return err
			}
			return render(a.out, job)
		},
	}
	flags := create.Flags()
	flags.StringVar(&req.Title, "title", "", "Job title")
	flags.StringVar(&req.Company, "company", "", "Company")
	flags.StringVar(&req.Location, "location", "", "Location")
	flags.StringVar(&req.EmploymentType, "type", "", "Employment type")
	flags.StringVar(&req.Description, "description", "", "Description")
	flags.StringVar(&req.ApplyLink, "apply", "", "Application link")
	flags.StringVar(&req.SearchedSkill, "skill", "", "Skill the posting matched")

	del := &cobra.Command{
		Use:   "delete <jobId>",
		Short: "Delete a job posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := argID(args, 0, "jobId")
			if err != nil {
				return err
			}
			if err := a.jobService().Delete(cmd.Context(), a.store.Get(), jobID); err != nil {
				return err
			}
			say(a.out, "Job deleted.")
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func printJobs(w io.Writer, view *models.JobsView) error {
	if view.Message != "" {
		say(w, "%s", view.Message)
		return nil
	}
	return render(w, view)
}

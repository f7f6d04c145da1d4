package cli

import (
	"context"
	"fmt"

	"thought-echo/app"
	"thought-echo/models"

	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	var format outputFormat

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				notes, err := a.Notes.List(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if ok, err := format.encode(out, notes); ok {
					return err
				}

				if len(notes) == 0 {
					fmt.Fprintln(out, "No notes yet.")
					return nil
				}
				for _, note := range notes {
					printNoteLine(out, note)
				}
				return nil
			})
		},
	}

	format.register(cmd)
	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	var format outputFormat

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				note, err := a.Notes.Get(ctx, id)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if ok, err := format.encode(out, note); ok {
					return err
				}
				printNote(out, note)
				return nil
			})
		},
	}

	format.register(cmd)
	return cmd
}

func newAddCmd(opts *options) *cobra.Command {
	var in models.NoteCreate

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				note, err := a.Notes.Create(ctx, in)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Created note %d\n", note.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Note title")
	cmd.Flags().StringVar(&in.Content, "content", "", "Note content")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newEditCmd(opts *options) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change the title or content of a note",
		Long:  `Only the flags given are changed; the rest of the note is kept.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			patch := models.NoteUpdate{ID: id}
			if cmd.Flags().Changed("title") {
				patch.Title = models.Some(title)
			}
			if cmd.Flags().Changed("content") {
				patch.Content = models.Some(content)
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				note, err := a.Notes.Update(ctx, patch)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Updated note %d\n", note.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content")
	return cmd
}

func newRmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Notes.Delete(ctx, id); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %d\n", id)
				return nil
			})
		},
	}
}

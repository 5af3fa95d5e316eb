package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"carnet-ocr/internal/domain/entity"
)

func newScanCmd(rt *application) *cobra.Command {
	var front, back string
	var base64Input bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Extract the identity record from front and back photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			frontData, err := os.ReadFile(front)
			if err != nil {
				return fmt.Errorf("read front: %w", err)
			}
			backData, err := os.ReadFile(back)
			if err != nil {
				return fmt.Errorf("read back: %w", err)
			}

			var result *entity.DocumentResult
			if base64Input {
				result, err = rt.app.DocumentService.ProcessBase64Document(cmd.Context(), string(frontData), string(backData))
			} else {
				result, err = rt.app.DocumentService.ProcessCompleteDocument(cmd.Context(), frontData, backData)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&front, "front", "", "path to the front photo")
	cmd.Flags().StringVar(&back, "back", "", "path to the back photo")
	cmd.Flags().BoolVar(&base64Input, "base64", false, "files contain base64 or data URL text instead of raw images")
	_ = cmd.MarkFlagRequired("front")
	_ = cmd.MarkFlagRequired("back")
	return cmd
}

func newFaceCmd(rt *application) *cobra.Command {
	var side, image string

	cmd := &cobra.Command{
		Use:   "face",
		Short: "Process a single side of the carnet",
		RunE: func(cmd *cobra.Command, args []string) error {
			face := entity.Face(side)
			if face != entity.FaceFront && face != entity.FaceBack {
				return fmt.Errorf("--side must be %q or %q", entity.FaceFront, entity.FaceBack)
			}
			data, err := os.ReadFile(image)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			report, err := rt.app.DocumentService.ProcessFace(cmd.Context(), data, face)
			if printErr := printJSON(cmd.OutOrStdout(), report); printErr != nil {
				return printErr
			}
			return err
		},
	}

	cmd.Flags().StringVar(&side, "side", string(entity.FaceFront), "carnet side: front or back")
	cmd.Flags().StringVar(&image, "image", "", "path to the photo")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func newAssessCmd(rt *application) *cobra.Command {
	var image string

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Check photo quality without recognition",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(image)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), rt.app.DocumentService.AssessImage(data))
		},
	}

	cmd.Flags().StringVar(&image, "image", "", "path to the photo")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

package commands

import (
	"encoding/json"
	"fmt"
	"image"
	"os"

	dimg "github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/vinay1337/hough-server/internal/client"
	"github.com/vinay1337/hough-server/internal/imaging"
	"github.com/vinay1337/hough-server/internal/protocol"
	"github.com/vinay1337/hough-server/internal/render"
)

func detectCmd() *cobra.Command {
	var (
		id        string
		minRadius int
		maxRadius int
		cannyLow  int
		cannyHigh int
		crop      []int
		annotate  string
	)

	cmd := &cobra.Command{
		Use:   "detect <image>",
		Short: "Detect a circle in an image via a running server",
		Long: `Detect loads an image, optionally crops a region of interest, sends it to
the detection server over the Unix socket, and prints the result as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := dimg.Open(args[0])
			if err != nil {
				return fmt.Errorf("open image: %w", err)
			}

			if len(crop) == 4 {
				rect := image.Rect(crop[0], crop[1], crop[2], crop[3])
				if rect.Empty() {
					return fmt.Errorf("empty crop region %v", crop)
				}
				src = dimg.Crop(src, rect)
			} else if len(crop) != 0 {
				return fmt.Errorf("--crop wants x1,y1,x2,y2")
			}

			if id == "" {
				id = args[0]
			}

			results, err := client.DetectCircles(cmd.Context(), cfg.SocketPath, []client.ROI{{
				ID:          id,
				Image:       imaging.ToGray(src),
				MinRadiusPx: minRadius,
				MaxRadiusPx: maxRadius,
			}}, client.Options{
				CannyLow:  cannyLow,
				CannyHigh: cannyHigh,
				Timeout:   cfg.ClientTimeout,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return err
			}

			if annotate != "" {
				circles := make([]*protocol.Circle, 0, len(results))
				for _, r := range results {
					circles = append(circles, r.Circle)
				}
				if err := render.Save(render.Annotate(src, circles), annotate); err != nil {
					return fmt.Errorf("write annotated image: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "roi identifier (default: image path)")
	cmd.Flags().IntVar(&minRadius, "min-radius", 5, "minimum radius in pixels (inclusive)")
	cmd.Flags().IntVar(&maxRadius, "max-radius", 100, "maximum radius in pixels (exclusive)")
	cmd.Flags().IntVar(&cannyLow, "canny-low", 50, "Canny low threshold (0-255)")
	cmd.Flags().IntVar(&cannyHigh, "canny-high", 150, "Canny high threshold (0-255)")
	cmd.Flags().IntSliceVar(&crop, "crop", nil, "crop region x1,y1,x2,y2 before detection")
	cmd.Flags().StringVar(&annotate, "annotate", "", "write an annotated copy of the image to this path")
	return cmd
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/osuushi/navmesh"
	"github.com/osuushi/navmesh/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	width       = kingpin.Flag("width", "Width of the domain.").Default("1000").Float64()
	height      = kingpin.Flag("height", "Height of the domain.").Default("1000").Float64()
	epsilon     = kingpin.Flag("epsilon", "Minimum feature size. Zero derives it from the domain.").Default("0").Float64()
	removals    = kingpin.Flag("remove", "Obstacle to remove again after inserting everything. Repeatable.").Ints()
	pngPath     = kingpin.Flag("png", "Write a PNG rendering of the mesh to this path.").String()
	svgPath     = kingpin.Flag("svg", "Write an SVG rendering of the mesh to this path.").String()
	scale       = kingpin.Flag("scale", "Pixels per domain unit when drawing.").Default("1").Float64()
	labels      = kingpin.Flag("labels", "Label triangles in the PNG rendering.").Bool()
	debug       = kingpin.Flag("debug", "Log every update at debug level.").Bool()
	metricsAddr = kingpin.Flag("metrics-addr", "Serve Prometheus metrics on this address after building the mesh.").String()
)

// Build a navmesh from obstacles read on stdin, and report on the result.
// Input should be newline separated points in the form "x y", with each
// obstacle separated by an extra newline. Obstacles are numbered from 1 in the
// order they are read. An obstacle whose last point repeats its first is
// closed, and a single point is a point obstacle.
func main() {
	kingpin.Parse()

	logger, err := newLogger(*debug)
	kingpin.FatalIfError(err, "creating logger")
	defer logger.Sync()

	registry := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(registry, "cli")
	kingpin.FatalIfError(err, "registering metrics")

	config := navmesh.DefaultConfig(r2.RectFromPoints(r2.Point{}, r2.Point{X: *width, Y: *height}))
	if *epsilon > 0 {
		config.Epsilon = *epsilon
		config.CollinearMargin = *epsilon
	}
	config.Logger = logger
	config.Observer = collector
	mesh, err := navmesh.New(config)
	kingpin.FatalIfError(err, "creating navmesh")

	obstacles, err := readObstacles(os.Stdin)
	kingpin.FatalIfError(err, "reading obstacles")
	fmt.Printf("Read %d obstacles\n", len(obstacles))

	var points []navmesh.Point
	var lengths []int
	var ids []navmesh.ObstacleID
	for i, obstacle := range obstacles {
		points = append(points, obstacle...)
		lengths = append(lengths, len(obstacle))
		ids = append(ids, navmesh.ObstacleID(i+1))
	}
	destroyed, err := mesh.Update(points, lengths, ids, nil)
	kingpin.FatalIfError(err, "inserting obstacles")
	fmt.Printf("Inserted: %d triangles destroyed\n", len(destroyed))

	if len(*removals) > 0 {
		remove := make([]navmesh.ObstacleID, len(*removals))
		for i, id := range *removals {
			remove[i] = navmesh.ObstacleID(id)
		}
		destroyed, err = mesh.Update(nil, nil, nil, remove)
		kingpin.FatalIfError(err, "removing obstacles")
		fmt.Printf("Removed: %d triangles destroyed\n", len(destroyed))
	}

	report(mesh)

	if *pngPath != "" {
		kingpin.FatalIfError(mesh.Mesh().DrawPNG(*pngPath, *scale, *labels), "writing %s", *pngPath)
	}
	if *svgPath != "" {
		kingpin.FatalIfError(writeSVG(mesh, *svgPath), "writing %s", *svgPath)
	}

	if *metricsAddr != "" {
		logger.Info("serving metrics", zap.String("addr", *metricsAddr))
		http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		kingpin.FatalIfError(http.ListenAndServe(*metricsAddr, nil), "serving metrics")
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func report(mesh *navmesh.Navmesh) {
	triangles, constrained := 0, 0
	for range mesh.Mesh().Triangles() {
		triangles++
	}
	for e := range mesh.Mesh().Edges(false) {
		if mesh.Constrained(e) {
			constrained++
		}
	}
	fmt.Printf("Vertices:    %d\n", mesh.NumVertices())
	fmt.Printf("Triangles:   %d\n", triangles)
	fmt.Printf("Constrained: %d edges\n", constrained)
	fmt.Printf("Obstacles:   %d\n", mesh.NumObstacles())
	if problems := mesh.Mesh().Validate(); len(problems) > 0 {
		fmt.Printf("Invalid:     %d problems, first: %v\n", len(problems), problems[0])
	}
}

func writeSVG(mesh *navmesh.Navmesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	mesh.Mesh().WriteSVG(f, *scale)
	return f.Close()
}

func readObstacles(in io.Reader) ([][]navmesh.Point, error) {
	obstacles := [][]navmesh.Point{}
	// Scan lines
	scanner := bufio.NewScanner(in)
	points := []navmesh.Point{}
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		// If it's empty, and we collected any points, this is the end of the obstacle
		if line == "" {
			if len(points) > 0 {
				obstacles = append(obstacles, points)
				points = []navmesh.Point{}
			}
			continue
		}

		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Handle trailing obstacle if any
	if len(points) > 0 {
		obstacles = append(obstacles, points)
	}
	return obstacles, nil
}

func parsePoint(line string) (navmesh.Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return navmesh.Point{}, errors.Errorf("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return navmesh.Point{}, errors.Wrap(err, "parsing x")
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return navmesh.Point{}, errors.Wrap(err, "parsing y")
	}
	return navmesh.Point{X: x, Y: y}, nil
}

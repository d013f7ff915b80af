// Package api provides the REST API server for musekit
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/musekit/musekit/pkg/converter"
	"github.com/musekit/musekit/pkg/events"
	"github.com/musekit/musekit/pkg/pitch"
	"github.com/musekit/musekit/pkg/scale"
)

// @title MuseKit API
// @version 1.0
// @description API for music parameter computations: pitches, intervals, scales and event conversions
// @host localhost:8080
// @BasePath /api/v1

// NewRouter builds the gin engine with all routes registered.
func NewRouter() *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/pitch/parse", handlePitchParse)
		v1.POST("/pitch/transpose", handlePitchTranspose)
		v1.POST("/interval/between", handleIntervalBetween)
		v1.POST("/scale/pitch", handleScalePitch)
		v1.POST("/scale/nearest", handleScaleNearest)
		v1.POST("/convert/gracenotes", handleGraceNotes)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	return NewRouter().Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "musekit",
	})
}

// PitchParseRequest is the body for /pitch/parse.
type PitchParseRequest struct {
	Pitch string `json:"pitch" binding:"required"`
}

// PitchResponse describes a resolved pitch.
type PitchResponse struct {
	Name       string  `json:"name"`
	Hertz      float64 `json:"hertz"`
	MidiNumber float64 `json:"midi_number"`
}

func pitchResponse(p pitch.Pitch) PitchResponse {
	return PitchResponse{
		Name:       fmt.Sprintf("%v", p),
		Hertz:      p.Hertz(),
		MidiNumber: pitch.MidiNumber(p),
	}
}

// handlePitchParse godoc
// @Summary Parse a pitch
// @Description Parses a pitch name, ratio or frequency and returns its properties
// @Tags pitch
// @Accept json
// @Produce json
// @Param request body PitchParseRequest true "Pitch to parse"
// @Success 200 {object} PitchResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/pitch/parse [post]
func handlePitchParse(c *gin.Context) {
	var req PitchParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := pitch.FromAny(req.Pitch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pitchResponse(p))
}

// PitchTransposeRequest is the body for /pitch/transpose.
type PitchTransposeRequest struct {
	Pitch    string `json:"pitch" binding:"required"`
	Interval string `json:"interval" binding:"required"`
}

// handlePitchTranspose godoc
// @Summary Transpose a pitch
// @Description Adds an interval to a pitch and returns the resulting pitch
// @Tags pitch
// @Accept json
// @Produce json
// @Param request body PitchTransposeRequest true "Pitch and interval"
// @Success 200 {object} PitchResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/pitch/transpose [post]
func handlePitchTranspose(c *gin.Context) {
	var req PitchTransposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := pitch.FromAny(req.Pitch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	interval, err := pitch.IntervalFromAny(req.Interval)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pitchResponse(p.Add(interval)))
}

// IntervalBetweenRequest is the body for /interval/between.
type IntervalBetweenRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// IntervalResponse describes a resolved interval.
type IntervalResponse struct {
	Name  string  `json:"name"`
	Cents float64 `json:"cents"`
}

// handleIntervalBetween godoc
// @Summary Derive the interval between two pitches
// @Description Returns the interval leading from one pitch to another
// @Tags pitch
// @Accept json
// @Produce json
// @Param request body IntervalBetweenRequest true "Pitch pair"
// @Success 200 {object} IntervalResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/interval/between [post]
func handleIntervalBetween(c *gin.Context) {
	var req IntervalBetweenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	from, err := pitch.FromAny(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := pitch.FromAny(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	interval, err := pitch.Between(from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, IntervalResponse{
		Name:  fmt.Sprintf("%v", interval),
		Cents: interval.Cents(),
	})
}

// ScaleRequest describes a repeating scale plus a query value.
type ScaleRequest struct {
	Tonic      string   `json:"tonic" binding:"required"`
	Intervals  []string `json:"intervals" binding:"required"`
	Repetition string   `json:"repetition"`
	Degree     int      `json:"degree"`
	Pitch      string   `json:"pitch"`
}

func buildScale(req *ScaleRequest) (*scale.Scale, error) {
	tonic, err := pitch.FromAny(req.Tonic)
	if err != nil {
		return nil, err
	}
	period := make([]pitch.Interval, 0, len(req.Intervals))
	for _, name := range req.Intervals {
		interval, err := pitch.IntervalFromAny(name)
		if err != nil {
			return nil, err
		}
		period = append(period, interval)
	}
	repetition := pitch.Interval(pitch.Cents(1200))
	if req.Repetition != "" {
		repetition, err = pitch.IntervalFromAny(req.Repetition)
		if err != nil {
			return nil, err
		}
	}
	family, err := scale.NewRepeatingFamily(period, repetition)
	if err != nil {
		return nil, err
	}
	return scale.NewRepeating(tonic, family)
}

// ScalePitchResponse is the result of /scale/pitch.
type ScalePitchResponse struct {
	Degree int           `json:"degree"`
	Pitch  PitchResponse `json:"pitch"`
}

// handleScalePitch godoc
// @Summary Resolve a scale degree to a pitch
// @Description Builds a repeating scale and returns the pitch at the given degree
// @Tags scale
// @Accept json
// @Produce json
// @Param request body ScaleRequest true "Scale and degree"
// @Success 200 {object} ScalePitchResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/scale/pitch [post]
func handleScalePitch(c *gin.Context) {
	var req ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, err := buildScale(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.PitchAt(req.Degree)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ScalePitchResponse{
		Degree: req.Degree,
		Pitch:  pitchResponse(p),
	})
}

// ScaleNearestResponse is the result of /scale/nearest.
type ScaleNearestResponse struct {
	Degree         int           `json:"degree"`
	DeviationCents float64       `json:"deviation_cents"`
	Pitch          PitchResponse `json:"pitch"`
}

// handleScaleNearest godoc
// @Summary Find the nearest scale degree
// @Description Builds a repeating scale and returns the degree closest to a pitch
// @Tags scale
// @Accept json
// @Produce json
// @Param request body ScaleRequest true "Scale and pitch"
// @Success 200 {object} ScaleNearestResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/scale/nearest [post]
func handleScaleNearest(c *gin.Context) {
	var req ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Pitch == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pitch is required"})
		return
	}
	s, err := buildScale(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := pitch.FromAny(req.Pitch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	degree, deviation, err := s.NearestDegree(p)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	nearest, err := s.PitchAt(degree)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ScaleNearestResponse{
		Degree:         degree,
		DeviationCents: deviation,
		Pitch:          pitchResponse(nearest),
	})
}

// EventDTO is the wire form of an event tree. Type is "note", "sequence"
// or "concurrence".
type EventDTO struct {
	Type       string     `json:"type"`
	Pitches    []string   `json:"pitches,omitempty"`
	Duration   float64    `json:"duration,omitempty"`
	Volume     string     `json:"volume,omitempty"`
	Grace      []EventDTO `json:"grace,omitempty"`
	AfterGrace []EventDTO `json:"after_grace,omitempty"`
	Events     []EventDTO `json:"events,omitempty"`
}

func (dto *EventDTO) toEvent() (events.Event, error) {
	switch dto.Type {
	case "note", "":
		vol := dto.Volume
		if vol == "" {
			vol = "mf"
		}
		note, err := events.NewNote(dto.Pitches, dto.Duration, vol)
		if err != nil {
			return nil, err
		}
		for i := range dto.Grace {
			grace, err := dto.Grace[i].toNote()
			if err != nil {
				return nil, err
			}
			note.Grace = append(note.Grace, grace)
		}
		for i := range dto.AfterGrace {
			grace, err := dto.AfterGrace[i].toNote()
			if err != nil {
				return nil, err
			}
			note.AfterGrace = append(note.AfterGrace, grace)
		}
		return note, nil
	case "sequence", "concurrence":
		children := make([]events.Event, 0, len(dto.Events))
		for i := range dto.Events {
			child, err := dto.Events[i].toEvent()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if dto.Type == "sequence" {
			return &events.Sequence{Events: children}, nil
		}
		return &events.Concurrence{Events: children}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", dto.Type)
	}
}

func (dto *EventDTO) toNote() (*events.Note, error) {
	event, err := dto.toEvent()
	if err != nil {
		return nil, err
	}
	note, ok := event.(*events.Note)
	if !ok {
		return nil, fmt.Errorf("grace notes must be plain notes, got %q", dto.Type)
	}
	return note, nil
}

func fromEvent(event events.Event) EventDTO {
	switch e := event.(type) {
	case *events.Note:
		dto := EventDTO{Type: "note", Duration: e.Duration()}
		for _, p := range e.Pitches {
			dto.Pitches = append(dto.Pitches, fmt.Sprintf("%v", p))
		}
		if e.Volume != nil {
			dto.Volume = fmt.Sprintf("%.2f", e.Volume.Decibel())
		}
		for _, grace := range e.Grace {
			dto.Grace = append(dto.Grace, fromEvent(grace))
		}
		for _, grace := range e.AfterGrace {
			dto.AfterGrace = append(dto.AfterGrace, fromEvent(grace))
		}
		return dto
	case *events.Sequence:
		dto := EventDTO{Type: "sequence"}
		for _, child := range e.Events {
			dto.Events = append(dto.Events, fromEvent(child))
		}
		return dto
	case *events.Concurrence:
		dto := EventDTO{Type: "concurrence"}
		for _, child := range e.Events {
			dto.Events = append(dto.Events, fromEvent(child))
		}
		return dto
	default:
		return EventDTO{}
	}
}

// handleGraceNotes godoc
// @Summary Expand grace notes
// @Description Flattens grace and after-grace notes of an event tree into plain sequences
// @Tags convert
// @Accept json
// @Produce json
// @Param request body EventDTO true "Event tree"
// @Success 200 {object} EventDTO
// @Failure 400 {object} map[string]string
// @Router /api/v1/convert/gracenotes [post]
func handleGraceNotes(c *gin.Context) {
	var dto EventDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	event, err := dto.toEvent()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	converted, err := converter.NewGraceNotes().Convert(event)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, fromEvent(converted))
}

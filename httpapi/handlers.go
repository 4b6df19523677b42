package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"chess-movegen/chessmg"
	"chess-movegen/diagram"
)

const apiCSP = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"

type positionJSON struct {
	FEN        string   `json:"fen"`
	Board      []string `json:"board"`
	ToPlay     string   `json:"toPlay"`
	Castling   string   `json:"castling"`
	EnPassant  string   `json:"enPassant,omitempty"`
	Halfmove   uint16   `json:"halfmove"`
	Fullmove   uint16   `json:"fullmove"`
	Result     string   `json:"result"`
	InCheck    bool     `json:"inCheck"`
	LegalMoves []string `json:"legalMoves"`
}

func describe(b *chessmg.Board) positionJSON {
	shape := b.Shape()
	rows := make([]string, shape.Height)
	for row := range rows {
		line := make([]byte, shape.Width)
		for file := range line {
			line[file] = b.At(row*shape.Width + file).Glyph()
		}
		rows[row] = string(line)
	}
	legal := b.LegalMoves()
	moves := make([]string, len(legal))
	for i, m := range legal {
		moves[i] = b.UCI(m)
	}
	p := positionJSON{
		FEN:        b.ToFEN(),
		Board:      rows,
		ToPlay:     strings.ToLower(b.ToPlay().String()),
		Castling:   b.Castling().String(),
		Halfmove:   b.HalfmoveClock(),
		Fullmove:   b.FullmoveNumber(),
		Result:     b.Result().String(),
		InCheck:    b.InCheck(b.ToPlay()),
		LegalMoves: moves,
	}
	if ep := b.EnPassant(); ep.Valid {
		p.EnPassant = shape.Algebraic(ep.Target)
	}
	return p
}

// ---- JSON helpers ----

func (s *Server) withJSON(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", apiCSP)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

// statusFor maps core errors onto response codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, chessmg.ErrFormat):
		return http.StatusBadRequest
	case errors.Is(err, chessmg.ErrIllegalMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, chessmg.ErrGameOver):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeCoreError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("httpapi: %v", err)
	}
	writeError(w, status, err.Error())
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// boardFromQuery parses the fen parameter, defaulting to the start position,
// and settles the result of positions that are already decided.
func boardFromQuery(r *http.Request) (*chessmg.Board, error) {
	fen := strings.TrimSpace(r.URL.Query().Get("fen"))
	if fen == "" {
		fen = chessmg.StartFEN
	}
	b, err := chessmg.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	b.Adjudicate()
	return b, nil
}

// ---- API: position ----

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	b, err := boardFromQuery(r)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, describe(b))
}

// ---- API: move ----

type moveBody struct {
	FEN  string `json:"fen"`
	Move string `json:"move"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body moveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	fen := strings.TrimSpace(body.FEN)
	if fen == "" {
		fen = chessmg.StartFEN
	}
	b, err := chessmg.ParseFEN(fen)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	if b.Adjudicate().IsOver() {
		writeCoreError(w, fmt.Errorf("%s: %w", b.Result(), chessmg.ErrGameOver))
		return
	}
	m, err := b.ParseMove(body.Move)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	uci := b.UCI(m)
	if err := b.Play(m); err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, map[string]any{"move": uci, "position": describe(b)})
}

// ---- API: perft ----

type perftJSON struct {
	FEN    string            `json:"fen"`
	Depth  int               `json:"depth"`
	Nodes  uint64            `json:"nodes"`
	Divide map[string]uint64 `json:"divide"`
}

func (s *Server) handlePerft(w http.ResponseWriter, r *http.Request) {
	depth := 1
	if v := r.URL.Query().Get("depth"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 1 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid depth %q", v))
			return
		}
		depth = d
	}
	if depth > s.cfg.MaxPerftDepth {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("depth %d exceeds the limit of %d", depth, s.cfg.MaxPerftDepth))
		return
	}
	b, err := boardFromQuery(r)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	divide := chessmg.PerftDivide(b, depth)
	var nodes uint64
	for _, n := range divide {
		nodes += n
	}
	writeJSON(w, perftJSON{FEN: b.ToFEN(), Depth: depth, Nodes: nodes, Divide: divide})
}

// ---- API: diagram ----

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	b, err := boardFromQuery(r)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	q := r.URL.Query()
	var opts []diagram.Option
	if list := strings.TrimSpace(q.Get("highlight")); list != "" {
		var squares []int
		for _, coord := range strings.Split(list, ",") {
			sq, err := b.Shape().ParseSquare(strings.TrimSpace(coord))
			if err != nil {
				writeCoreError(w, err)
				return
			}
			squares = append(squares, sq)
		}
		opts = append(opts, diagram.Highlight(squares...))
	}
	if v := q.Get("flip"); v != "" {
		flip, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid flip %q", v))
			return
		}
		opts = append(opts, diagram.Flip(flip))
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := diagram.Write(w, b, opts...); err != nil {
		log.Printf("httpapi: diagram: %v", err)
	}
}

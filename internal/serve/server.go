package serve

import (
	"context"
	"dailydigest/internal/domain/config"
	"dailydigest/internal/domain/content"
	domainerr "dailydigest/internal/domain/errors"
	"dailydigest/internal/domain/site"
	"dailydigest/internal/index"
	"dailydigest/internal/ingest"
	"dailydigest/internal/render"
	"errors"
	"fmt"
	"github.com/fsnotify/fsnotify"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type Server struct {
	cfg config.Config

	indexPath string
	res       *ingest.Resolver
	idx       *index.Store
	md        *render.MarkdownRenderer
	tpl       render.Renderer

	sseMu     sync.Mutex
	sseConns  map[chan string]struct{}
	watcher   *fsnotify.Watcher
	watchOnce sync.Once
}

func New(cfg config.Config, indexPath string, themeDir, themeName string) (*Server, error) {
	md := render.NewMarkdownRenderer()
	tpl, err := render.NewTemplateRenderer(themeDir, themeName)
	if err != nil {
		return nil, fmt.Errorf("serve: failed to create template renderer: %w", err)
	}
	st, err := index.Open(index.OpenOptions{Path: indexPath})
	if err != nil {
		return nil, fmt.Errorf("serve: failed to open index: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		indexPath: indexPath,
		res:       ingest.NewResolver(cfg.Build.IssuesDir),
		idx:       st,
		md:        md,
		tpl:       tpl,
		sseConns:  make(map[chan string]struct{}),
	}
	return s, nil
}

func (s *Server) Close() error {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	if s.idx != nil {
		return s.idx.Close()
	}
	return nil
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if err := s.rebuild(ctx); err != nil {
		return err
	}

	if s.cfg.Serve.Watch {
		if err := s.startWatch(ctx); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	log.Printf("[serve] listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoute)

	// dev SSE
	mux.HandleFunc("/dev/events", s.handleSSE)

	staticDir := filepath.Join(s.cfg.Build.ThemeDir, s.cfg.Site.Theme, "static")
	fileServer := http.FileServer(http.Dir(staticDir))
	mux.Handle("/css/", fileServer)
	mux.Handle("/favicon.ico", fileServer)

	return mux
}

// rebuild 重新解析全部期并整体替换 bbolt 索引。
func (s *Server) rebuild(ctx context.Context) error {
	log.Printf("[serve] ingest from %s ...", s.res.Root)
	results, warns, err := s.res.LoadAll()
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	for _, w := range warns {
		log.Printf("[warn] %s: %s", w.Path, w.Msg)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	issues := make([]content.Issue, 0, len(results))
	papers := 0
	for _, r := range results {
		issues = append(issues, r.Issue)
		papers += len(r.Issue.Papers)
	}
	log.Printf("[serve] ingested %d issues, %d papers", len(issues), papers)

	if err := s.idx.Rebuild(issues); err != nil {
		return fmt.Errorf("index rebuild: %w", err)
	}

	log.Printf("[serve] rebuild complete")
	s.broadcastSSE("reload")
	return nil
}

func (s *Server) startWatch(ctx context.Context) error {
	var err error
	s.watchOnce.Do(func() {
		w, e := fsnotify.NewWatcher()
		if e != nil {
			err = e
			return
		}
		s.watcher = w

		go s.watchLoop(ctx)

		// fsnotify 不递归，每一级目录都要单独 Add
		err = filepath.Walk(s.res.Root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.Add(path)
			}
			return nil
		})
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[warn] issues dir %s does not exist, watch disabled", s.res.Root)
			err = nil
		}
	})
	return err
}

func (s *Server) watchLoop(ctx context.Context) {
	log.Printf("[serve] watching for file changes ...")
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	trigger := func() {
		if !debounce.Stop() {
			select {
			case <-debounce.C:
			default:
			}
		}
		debounce.Reset(200 * time.Millisecond)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			// 新建的期目录也要纳入监控
			if ev.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = s.watcher.Add(ev.Name)
				}
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				trigger()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[warn] watcher error: %v", err)
		case <-debounce.C:
			ctx2, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := s.rebuild(ctx2); err != nil {
				log.Printf("[serve] rebuild error: %v", err)
			}
			cancel()
		}
	}
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan string, 8)

	s.sseMu.Lock()
	s.sseConns[ch] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseConns, ch)
		close(ch)
		s.sseMu.Unlock()
	}()
	fmt.Fprintf(w, "data: %s\n\n", "hello")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) broadcastSSE(msg string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()
	for ch := range s.sseConns {
		select {
		case ch <- msg:
		default:
		}
	}
}

// handleRoute 按 site.ParseRoute 的结果分发页面请求。
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	rt := site.ParseRoute(r.URL.EscapedPath())
	switch rt.Kind {
	case site.RouteHome:
		s.handleHome(w, r)
	case site.RouteIssue:
		s.handleIssue(w, r, rt.Date)
	case site.RoutePaper:
		s.handlePaper(w, r, rt.Date, rt.Key)
	case site.RouteFigure:
		s.handleFigure(w, r, rt.Date, rt.Key)
	case site.RouteTag:
		s.handleTag(w, r, rt.Key)
	default:
		s.handleNotFound(w, r)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	issues, err := s.idx.ListIssues(index.ListOptions{Page: 1, Size: 1000})
	if err != nil {
		log.Printf("home query error: %v", err)
		http.Error(w, "home query error", http.StatusInternalServerError)
		return
	}

	cards := make([]render.IssueCard, 0, len(issues))
	for _, is := range issues {
		cards = append(cards, render.IssueCard{
			Date:       is.Date,
			Title:      is.Title,
			PaperCount: len(is.Papers),
			TopTags:    is.TopTags(3),
		})
	}

	page := render.HomePage{
		Site:      s.cfg.Site,
		Issues:    cards,
		Generated: time.Now(),
	}
	htmlBytes, err := s.tpl.RenderHome(r.Context(), page)
	if err != nil {
		log.Printf("render home error: %v", err)
		http.Error(w, "render home error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlBytes)
}

// handleIssue 和 handlePaper 读 bbolt 索引，索引在启动和文件变化时整体重建。
func (s *Server) handleIssue(w http.ResponseWriter, r *http.Request, date string) {
	is, err := s.idx.GetIssue(date)
	if err != nil {
		s.handleLookupError(w, r, err)
		return
	}

	papers := is.Papers
	if n := s.cfg.Build.PapersPerIssue; n > 0 && len(papers) > n {
		papers = papers[:n]
	}

	var xsnap template.HTML
	if raw := s.res.XSnapshot(date); strings.TrimSpace(raw) != "" {
		out, err := s.md.Render([]byte(raw))
		if err != nil {
			log.Printf("[warn] %s: x snapshot render: %v", s.res.IssueDir(date), err)
		} else {
			xsnap = out
		}
	}

	page := render.IssuePage{
		Site:      s.cfg.Site,
		Issue:     is,
		Sections:  render.ParseDigest(is.Digest),
		Papers:    papers,
		Total:     len(is.Papers),
		XSnapshot: xsnap,
		Title:     is.Title,
	}
	htmlBytes, err := s.tpl.RenderIssue(r.Context(), page)
	if err != nil {
		log.Printf("render issue error: %v", err)
		http.Error(w, "render issue error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlBytes)
}

func (s *Server) handlePaper(w http.ResponseWriter, r *http.Request, date, id string) {
	it, err := s.idx.GetItem(date, id)
	if err != nil {
		s.handleLookupError(w, r, err)
		return
	}
	is, err := s.idx.GetIssue(date)
	if err != nil {
		s.handleLookupError(w, r, err)
		return
	}

	page := render.PaperPage{
		Site:       s.cfg.Site,
		Date:       date,
		IssueTitle: is.Title,
		Item:       it,
		Blocks:     render.ParseBlocks(it.Markdown),
		Title:      it.Title,
	}
	htmlBytes, err := s.tpl.RenderPaper(r.Context(), page)
	if err != nil {
		log.Printf("render paper error: %v", err)
		http.Error(w, "render paper error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlBytes)
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request, date, file string) {
	p := s.res.FigureFile(date, file)
	fi, err := os.Stat(p)
	if err != nil || fi.IsDir() {
		s.handleNotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", site.FigureContentType(file))
	http.ServeFile(w, r, p)
}

// 标签页：/tags/<tag>/
func (s *Server) handleTag(w http.ResponseWriter, r *http.Request, tag string) {
	hits, err := s.idx.ListByTag(tag)
	if err != nil {
		log.Printf("tag query error: %v", err)
		http.Error(w, "tag query error", http.StatusInternalServerError)
		return
	}
	if len(hits) == 0 {
		s.handleNotFound(w, r)
		return
	}

	entries := make([]render.TagEntry, 0, len(hits))
	for _, h := range hits {
		entries = append(entries, render.TagEntry{Date: h.Date, Item: h.Item})
	}
	page := render.TagPage{
		Site:    s.cfg.Site,
		Tag:     tag,
		Entries: entries,
		Title:   fmt.Sprintf("Tag: %s", tag),
	}
	htmlBytes, err := s.tpl.RenderTag(r.Context(), page)
	if err != nil {
		log.Printf("render tag error: %v", err)
		http.Error(w, "render tag error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlBytes)
}

func (s *Server) handleLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domainerr.ErrNotFound) {
		s.handleNotFound(w, r)
		return
	}
	log.Printf("index lookup error: %v", err)
	http.Error(w, "index lookup error", http.StatusInternalServerError)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	page := render.NotFoundPage{
		Site:  s.cfg.Site,
		Path:  r.URL.Path,
		Title: "Not Found",
	}
	htmlBytes, err := s.tpl.RenderNotFound(r.Context(), page)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(htmlBytes)
}

func writeHTML(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

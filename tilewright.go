// This file is part of Tilewright.
//
// Tilewright is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tilewright is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tilewright.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/tilewright/archivefs"
	"github.com/jetsetilly/tilewright/audio"
	"github.com/jetsetilly/tilewright/audio/sdlaudio"
	"github.com/jetsetilly/tilewright/cache"
	"github.com/jetsetilly/tilewright/editor"
	"github.com/jetsetilly/tilewright/graphics/sdltexture"
	"github.com/jetsetilly/tilewright/logger"
	"github.com/jetsetilly/tilewright/modalflag"
	"github.com/jetsetilly/tilewright/notifications"
	"github.com/jetsetilly/tilewright/panels"
	"github.com/jetsetilly/tilewright/preferences"
	"github.com/jetsetilly/tilewright/prefs"
	"github.com/jetsetilly/tilewright/project"
	"github.com/jetsetilly/tilewright/statsview"
	"github.com/jetsetilly/tilewright/storage/remote"
	"github.com/jetsetilly/tilewright/version"
	"github.com/jetsetilly/tilewright/wavwriter"
	"github.com/mattn/go-isatty"
)

// the duration of one frame when servicing the editor
const frameDuration = time.Second / 60

// communication between the main() function and the launch() function. SDL
// requires that initialisation happens on the main thread so functions that
// call into SDL are sent to the main thread to be run.
type mainSync struct {
	// the value to use with os.Exit(). launch() sends exactly one value
	quit chan int

	// functions to be run on the main thread
	mainthread chan func()
}

// run the function on the main thread and wait for it to complete
func (sync *mainSync) run(f func()) {
	done := make(chan struct{})
	sync.mainthread <- func() {
		f()
		close(done)
	}
	<-done
}

// #mainthread
func main() {
	sync := &mainSync{
		quit:       make(chan int),
		mainthread: make(chan func()),
	}

	// #ctrlc cancels the context. launch() should return shortly after
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	go launch(ctx, sync)

	exitVal := 0
	done := false
	for !done {
		select {
		case exitVal = <-sync.quit:
			done = true
		case f := <-sync.mainthread:
			f()
		}
	}

	fmt.Print("\r")
	cancel()
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine
func launch(ctx context.Context, sync *mainSync) {
	md := modalflag.NewModes(os.Stdout, os.Args[1:])
	md.AddSubModes("RUN", "LIST", "PLAY", "VIEW", "SERVE", "VERSION")
	md.AdditionalHelp(fmt.Sprintf("%s opens game projects on disk, in zip archives or in object storage", version.ApplicationName))

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.quit <- 0
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.quit <- 10
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(ctx, md)
	case "LIST":
		err = list(ctx, md)
	case "PLAY":
		err = play(ctx, md, sync)
	case "VIEW":
		err = view(ctx, md, sync)
	case "SERVE":
		err = serve(ctx, md)
	case "VERSION":
		fmt.Println(version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.quit <- 20
		return
	}

	sync.quit <- 0
}

// flags common to every mode that opens a project
type common struct {
	backend *string
	codec   *string
	prefs   *string
	log     *bool
	stats   *bool
}

func addCommon(md *modalflag.Modes) common {
	return common{
		backend: md.AddString("backend", "", fmt.Sprintf("storage backend: %s (default: from preferences)", strings.Join(preferences.Backends, ", "))),
		codec:   md.AddString("codec", "", "compression of project files: none, zstd, lz4"),
		prefs:   md.AddString("prefs", "", "override preferences for this session. eg. \"audio.volume::50; storage.concurrency::4\""),
		log:     md.AddBool("log", false, "echo log to stdout"),
		stats:   md.AddBool("statsview", false, "run the runtime statistics server"),
	}
}

// setEcho sets the log echo. output to a terminal is colorized
func setEcho(enabled bool) {
	if !enabled {
		logger.SetEcho(nil, false)
		return
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		logger.SetEcho(logger.NewColorizer(os.Stdout), false)
		return
	}
	logger.SetEcho(os.Stdout, false)
}

// guessBackend chooses a backend from the form of the location
func guessBackend(location string) string {
	switch {
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		return "remote"
	case archivefs.IsArchive(location):
		return "zip"
	}
	return ""
}

// setup prepares the session for the project at location. the returned
// function must be called when the session ends
func (c common) setup(location string) (*preferences.Preferences, func(), error) {
	setEcho(*c.log)

	stop := func() {}
	if *c.stats {
		stop = statsview.Launch(os.Stdout, "")
	}

	if *c.prefs != "" {
		prefs.PushCommandLineStack(*c.prefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "prefs", "unused command line preferences: %s", unused)
			}
		}()
	}

	p, err := preferences.NewPreferences("")
	if err != nil {
		stop()
		return nil, nil, err
	}

	backend := *c.backend
	if backend == "" {
		backend = guessBackend(location)
	}

	for _, err := range []error{
		func() error {
			if backend == "" {
				return nil
			}
			return p.Backend.Set(backend)
		}(),
		func() error {
			if *c.codec == "" {
				return nil
			}
			return p.Codec.Set(*c.codec)
		}(),
		p.ProjectLocation.Set(location),
	} {
		if err != nil {
			stop()
			return nil, nil, err
		}
	}

	return p, stop, nil
}

func run(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	c := addCommon(md)
	maps := md.AddIntList("maps", "maps to open (default: every map in the map tree)")
	icons := md.AddString("icons", "", "open a graphic picker for the graphics directory")
	sound := md.AddString("sound", "", "load a sound with the sound test. eg. BGM/Town")
	timeout := md.AddDuration("timeout", 30*time.Second, "give up if the project has not finished loading")
	snapshot := md.AddBool("snapshot", false, "print every cache entry after loading")
	memvizFile := md.AddString("memviz", "", "write a graphviz dump of the cache entries to file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("project required for %s mode", md)
	}

	pref, stop, err := c.setup(md.GetArg(0))
	if err != nil {
		return err
	}
	defer stop()

	ed := editor.NewEditor(pref, nil, nil)
	defer ed.Close()

	if err := ed.Open(ctx); err != nil {
		return err
	}

	if *icons != "" {
		if err := ed.Add(panels.NewGraphicPicker(*icons)); err != nil {
			return err
		}
	}

	if *sound != "" {
		src, name, ok := strings.Cut(*sound, "/")
		s, valid := audio.ParseSource(src)
		if !ok || !valid {
			return fmt.Errorf("sound should be of the form SOURCE/NAME: %s", *sound)
		}
		st := panels.NewSoundTest(s)
		st.Play(name)
		if err := ed.Add(st); err != nil {
			return err
		}
	}

	// maps are opened when the map tree is ready so that the panels can be
	// given the map names
	mapsOpened := false
	openMaps := func() {
		r := ed.Cache().GetOrLoad(project.MapInfosKey)
		if r.State == cache.Loading {
			return
		}
		mapsOpened = true

		infos, _ := cache.As[project.MapInfos](r)
		if len(*maps) > 0 {
			for _, id := range *maps {
				name := "Untitled"
				if i, ok := infos[id]; ok {
					name = i.Name
				}
				ed.OpenMap(id, name)
			}
			return
		}

		if r.State == cache.Failed {
			ed.Toasts().Warning("Cannot read map tree: %v", r.Err)
			return
		}
		for _, i := range infos.Sorted() {
			ed.OpenMap(i.ID, i.Name)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	// loading is complete after a number of consecutive frames with no reads
	// in flight
	const idleFrames = 3

	var lines []string
	idle := 0
	for idle < idleFrames {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("project did not finish loading after %v", *timeout)
			}
			return nil
		case <-ticker.C:
		}

		if !mapsOpened {
			openMaps()
		}

		lines = ed.Service()
		if ed.Idle() && mapsOpened {
			idle++
		} else {
			idle = 0
		}
	}

	for _, l := range lines {
		fmt.Println(l)
	}
	for _, n := range ed.Toasts().Active() {
		fmt.Printf("* %s: %s\n", n.Level, n)
	}

	st := ed.Cache().Stats()
	fmt.Printf("cache: %d loads, %d failures, %d hits, %d misses\n", st.Loads, st.Failures, st.Hits, st.Misses)

	if *snapshot {
		if err := ed.Cache().WriteSnapshot(os.Stdout); err != nil {
			return err
		}
	}

	if *memvizFile != "" {
		f, err := os.Create(*memvizFile)
		if err != nil {
			return err
		}
		memviz.Map(f, ed.Cache().Snapshot())
		if err := f.Close(); err != nil {
			return err
		}
	}

	return nil
}

func list(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	c := addCommon(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var dir string
	switch len(md.RemainingArgs()) {
	case 1:
	case 2:
		dir = md.GetArg(1)
	default:
		return fmt.Errorf("project and optional directory required for %s mode", md)
	}

	pref, stop, err := c.setup(md.GetArg(0))
	if err != nil {
		return err
	}
	defer stop()

	backend, closer, err := editor.NewBackend(ctx, editor.Options{
		Backend:     pref.BackendName(),
		Location:    md.GetArg(0),
		Codec:       pref.CodecValue(),
		RemoteRate:  pref.RemoteRate.Get().(float64),
		RemoteBurst: pref.RemoteBurst.Get().(int),
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	ent, err := backend.List(ctx, dir)
	if err != nil {
		return err
	}
	for _, e := range ent {
		fmt.Println(e)
	}

	return nil
}

func play(ctx context.Context, md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	c := addCommon(md)
	volume := md.AddInt("volume", -1, "volume 0 to 100 (default: from preferences)")
	pitch := md.AddInt("pitch", -1, "pitch 50 to 150 (default: from preferences)")
	wavFile := md.AddString("wav", "", "also write the decoded sound to a wav file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("project and sound (eg. BGM/Town) required for %s mode", md)
	}

	src, name, ok := strings.Cut(md.GetArg(1), "/")
	s, valid := audio.ParseSource(src)
	if !ok || !valid {
		return fmt.Errorf("sound should be of the form SOURCE/NAME: %s", md.GetArg(1))
	}

	pref, stop, err := c.setup(md.GetArg(0))
	if err != nil {
		return err
	}
	defer stop()

	if *volume >= 0 {
		if err := pref.Volume.Set(*volume); err != nil {
			return err
		}
	}
	if *pitch >= 0 {
		if err := pref.Pitch.Set(*pitch); err != nil {
			return err
		}
	}

	// the SDL audio subsystem is opened on the main thread
	open := func() (audio.Device, error) {
		var dev audio.Device
		var err error
		sync.run(func() {
			dev, err = sdlaudio.Open()
		})
		return dev, err
	}

	ed := editor.NewEditor(pref, open, nil)
	defer func() {
		sync.run(func() {
			ed.Close()
		})
	}()

	if err := ed.Open(ctx); err != nil {
		return err
	}

	// running from the command line counts as user interaction
	ed.Interacted()

	st := panels.NewSoundTest(s)
	st.Play(name)
	if err := ed.Add(st); err != nil {
		return err
	}

	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	var started bool
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		ed.Service()

		for _, n := range ed.Toasts().Active() {
			if n.Level == notifications.Error {
				return fmt.Errorf("%s", n.Message)
			}
		}

		if st.Requested() != "" {
			continue
		}
		if ed.Audio().Playing(s) {
			if !started {
				fmt.Printf("playing %s. press ctrl-c to stop\n", md.GetArg(1))
				if *wavFile != "" {
					clip, ok := cache.As[*audio.Clip](ed.Cache().Peek(project.SoundKey(s, name)))
					if !ok {
						return fmt.Errorf("sound not ready for writing: %s", md.GetArg(1))
					}
					if err := wavwriter.Write(*wavFile, clip); err != nil {
						return err
					}
				}
			}
			started = true
			continue
		}
		if started {
			return nil
		}
	}
}

func view(ctx context.Context, md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	c := addCommon(md)
	filter := md.AddString("filter", "", "show the best match for the filter if no image is named")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var name string
	switch len(md.RemainingArgs()) {
	case 2:
	case 3:
		name = md.GetArg(2)
	default:
		return fmt.Errorf("project, graphics directory and optional image required for %s mode", md)
	}

	pref, stop, err := c.setup(md.GetArg(0))
	if err != nil {
		return err
	}
	defer stop()

	var win *sdltexture.Window
	sync.run(func() {
		win, err = sdltexture.OpenWindow(version.ApplicationName, 640, 480)
	})
	if err != nil {
		return err
	}

	ed := editor.NewEditor(pref, nil, win.Opener())
	defer func() {
		sync.run(func() {
			ed.Close()
			win.Destroy()
		})
	}()

	if err := ed.Open(ctx); err != nil {
		return err
	}

	picker := panels.NewGraphicPicker(md.GetArg(1))
	picker.SetFilter(*filter)
	if err := ed.Add(picker); err != nil {
		return err
	}

	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	open := true
	for open {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if picker.Selected() == "" {
			if name != "" {
				picker.Select(name)
			} else if m := picker.Matches(); len(m) > 0 {
				picker.Select(m[0])
			}
		}

		// textures are created and drawn on the main thread
		sync.run(func() {
			open = win.Service()
			ed.Service()
			tex, _ := ed.Graphics().Texture(picker.Name())
			err = win.Present(tex)
		})
		if err != nil {
			return err
		}

		for _, n := range ed.Toasts().Active() {
			if n.Level == notifications.Error {
				return fmt.Errorf("%s", n.Message)
			}
		}
	}

	return nil
}

func serve(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	c := addCommon(md)
	addr := md.AddString("addr", "localhost:8600", "address to listen on")
	readOnly := md.AddBool("readonly", false, "refuse writes")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("project required for %s mode", md)
	}

	pref, stop, err := c.setup(md.GetArg(0))
	if err != nil {
		return err
	}
	defer stop()

	backend, closer, err := editor.NewBackend(ctx, editor.Options{
		Backend:  pref.BackendName(),
		Location: md.GetArg(0),
		Codec:    pref.CodecValue(),
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           remote.NewHandler(backend, *readOnly),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	fmt.Printf("serving %s on http://%s/\n", md.GetArg(0), *addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

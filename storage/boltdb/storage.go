package boltdb

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/eventia/eventia/events"
	"github.com/eventia/eventia/geo"
	"github.com/eventia/eventia/storage"
)

type LoggerFn func(string, ...interface{})

type Repo struct {
	d    *bolt.DB
	root []byte
	path string
	log  LoggerFn
	err  LoggerFn
}

const (
	rootBucket     = "eventia"
	eventsBucket   = "events"
	settingsBucket = "settings"
	geocodeBucket  = "geocode"

	settingsKey = "default"

	DefaultFile = "eventia.bdb"
)

// Config
type Config struct {
	Path  string
	LogFn LoggerFn
	ErrFn LoggerFn
}

// New returns a new bolt backed repository
func New(c Config) *Repo {
	b := Repo{
		root: []byte(rootBucket),
		path: c.Path,
		log:  func(string, ...interface{}) {},
		err:  func(string, ...interface{}) {},
	}
	if c.ErrFn != nil {
		b.err = c.ErrFn
	}
	if c.LogFn != nil {
		b.log = c.LogFn
	}

	return &b
}

func (r *Repo) open() error {
	var err error
	r.d, err = bolt.Open(r.path, 0600, nil)
	if err != nil {
		return fmt.Errorf("could not open db %s %w", r.path, err)
	}
	err = r.d.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists(r.root)
		if err != nil {
			return fmt.Errorf("unable to create root bucket %s: %w", r.root, err)
		}
		if !root.Writable() {
			return fmt.Errorf("non writeable root bucket %s", r.root)
		}
		for _, name := range []string{eventsBucket, settingsBucket, geocodeBucket} {
			if _, err := root.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("unable to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	return err
}

// Close closes the boltdb database if possible.
func (r *Repo) close() error {
	if r.d == nil {
		return nil
	}
	return r.d.Close()
}

// LoadEvent
func (r *Repo) LoadEvent(src events.Source, id string) events.UnifiedEvent {
	evs, err := r.LoadEvents(src)
	if err != nil {
		r.err("error loading events: %s", err)
	}
	for _, ev := range evs {
		if ev.ID == id {
			return ev
		}
	}
	return events.UnifiedEvent{}
}

// LoadEvents returns the cached events for the requested sources, or for
// every source when none are passed.
func (r *Repo) LoadEvents(sources ...events.Source) (events.Events, error) {
	if err := r.open(); err != nil {
		return nil, err
	}
	defer r.close()

	evs := make(events.Events, 0)
	err := r.d.View(func(tx *bolt.Tx) error {
		eb, err := r.eventsRoot(tx)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			return eb.ForEachBucket(func(name []byte) error {
				evs = append(evs, loadSourceBucket(eb.Bucket(name))...)
				return nil
			})
		}
		for _, src := range sources {
			if sb := eb.Bucket([]byte(src)); sb != nil {
				evs = append(evs, loadSourceBucket(sb)...)
			}
		}
		return nil
	})
	return evs, err
}

func loadSourceBucket(b *bolt.Bucket) events.Events {
	evs := make(events.Events, 0)
	if b == nil {
		return evs
	}
	b.ForEach(func(key, raw []byte) error {
		ev, err := loadItem(raw)
		if err != nil {
			// skip undecodable entries, the cache is best effort
			return nil
		}
		if ev.IsValid() {
			evs = append(evs, ev)
		}
		return nil
	})
	return evs
}

func loadItem(raw []byte) (events.UnifiedEvent, error) {
	ev := events.UnifiedEvent{}
	if len(raw) == 0 {
		return ev, fmt.Errorf("empty raw item")
	}
	err := json.Unmarshal(raw, &ev)
	return ev, err
}

// SaveEvents
func (r *Repo) SaveEvents(evs events.Events) error {
	if err := r.open(); err != nil {
		return err
	}
	defer r.close()

	var err error
	for _, ev := range evs {
		if err = r.save(ev); err != nil {
			r.err("Error saving event %s: %s", ev.Key(), err)
		}
	}
	return err
}

// SaveEvent
func (r *Repo) SaveEvent(ev events.UnifiedEvent) error {
	if err := r.open(); err != nil {
		return err
	}
	defer r.close()

	return r.save(ev)
}

func (r *Repo) save(ev events.UnifiedEvent) error {
	return r.d.Update(func(tx *bolt.Tx) error {
		eb, err := r.eventsRoot(tx)
		if err != nil {
			return err
		}
		sb, err := eb.CreateBucketIfNotExists([]byte(ev.Source))
		if err != nil {
			return fmt.Errorf("unable to create bucket %s: %w", ev.Source, err)
		}
		if !sb.Writable() {
			return fmt.Errorf("non writeable bucket %s", ev.Source)
		}
		entryBytes, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("could not marshal object: %w", err)
		}
		if err = sb.Put([]byte(ev.ID), entryBytes); err != nil {
			return fmt.Errorf("could not store encoded object: %w", err)
		}
		return nil
	})
}

func (r *Repo) eventsRoot(tx *bolt.Tx) (*bolt.Bucket, error) {
	root := tx.Bucket(r.root)
	if root == nil {
		return nil, fmt.Errorf("invalid bucket %s", r.root)
	}
	eb := root.Bucket([]byte(eventsBucket))
	if eb == nil {
		return nil, fmt.Errorf("invalid bucket %s/%s", r.root, eventsBucket)
	}
	return eb, nil
}

// LoadSettings returns the stored default location and radius, falling back
// to the defaults when nothing has been saved yet.
func (r *Repo) LoadSettings() (storage.Settings, error) {
	s := storage.DefaultSettings()
	if err := r.open(); err != nil {
		return s, err
	}
	defer r.close()

	err := r.d.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(r.root)
		if root == nil {
			return fmt.Errorf("invalid bucket %s", r.root)
		}
		sb := root.Bucket([]byte(settingsBucket))
		if sb == nil {
			return nil
		}
		raw := sb.Get([]byte(settingsKey))
		if len(raw) == 0 {
			return nil
		}
		return json.Unmarshal(raw, &s)
	})
	if s.RadiusKm <= 0 {
		s.RadiusKm = events.DefaultRadiusKm
	}
	return s, err
}

// SaveSettings
func (r *Repo) SaveSettings(s storage.Settings) error {
	if err := r.open(); err != nil {
		return err
	}
	defer r.close()

	return r.d.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(r.root)
		if root == nil {
			return fmt.Errorf("invalid bucket %s", r.root)
		}
		sb, err := root.CreateBucketIfNotExists([]byte(settingsBucket))
		if err != nil {
			return err
		}
		raw, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("could not marshal settings: %w", err)
		}
		return sb.Put([]byte(settingsKey), raw)
	})
}

// LoadPlace implements geo.Cache over the geocode bucket.
func (r *Repo) LoadPlace(address string) (*geo.Place, bool) {
	if err := r.open(); err != nil {
		return nil, false
	}
	defer r.close()

	var p geo.Place
	found := false
	r.d.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(r.root)
		if root == nil {
			return nil
		}
		gb := root.Bucket([]byte(geocodeBucket))
		if gb == nil {
			return nil
		}
		raw := gb.Get([]byte(address))
		if len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, &p); err == nil {
			found = true
		}
		return nil
	})
	if !found {
		return nil, false
	}
	return &p, true
}

// SavePlace implements geo.Cache over the geocode bucket.
func (r *Repo) SavePlace(address string, p geo.Place) error {
	if err := r.open(); err != nil {
		return err
	}
	defer r.close()

	return r.d.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(r.root)
		if root == nil {
			return fmt.Errorf("invalid bucket %s", r.root)
		}
		gb, err := root.CreateBucketIfNotExists([]byte(geocodeBucket))
		if err != nil {
			return err
		}
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("could not marshal place: %w", err)
		}
		return gb.Put([]byte(address), raw)
	})
}

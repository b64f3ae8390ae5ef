package main

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"xdao.co/jumpring/contract"
	"xdao.co/jumpring/model"
)

// arrival is one completed jump.
type arrival struct {
	Sender model.Identity
	To     model.Identity
	At     time.Time
}

// ring is a reference portal and authority in one process.
type ring struct {
	minimum       model.SapienceLevel
	rejectSnitch  bool
	now           func() time.Time
	arrivals      *lru.Cache[model.Identity, arrival]
	travels       prometheus.Counter
	notifications *prometheus.CounterVec
}

func newRing(minimum model.SapienceLevel, rejectSnitch bool, cacheSize int, reg prometheus.Registerer) (*ring, error) {
	cache, err := lru.New[model.Identity, arrival](cacheSize)
	if err != nil {
		return nil, err
	}
	r := &ring{
		minimum:      minimum,
		rejectSnitch: rejectSnitch,
		now:          time.Now,
		arrivals:     cache,
		travels: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jumpring_portal_travels_total",
			Help: "Jumps performed by this portal.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jumpring_authority_notifications_total",
			Help: "Registration notifications received, by result.",
		}, []string{"result"}),
	}
	if reg != nil {
		if err := reg.Register(r.travels); err != nil {
			return nil, err
		}
		if err := reg.Register(r.notifications); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *ring) MinimumSapience(context.Context) (model.SapienceLevel, error) {
	return r.minimum, nil
}

// Travel records where the sender's traveler went. Only the most recent
// arrival per destination is kept, up to the cache size.
func (r *ring) Travel(_ context.Context, sender, to model.Identity) error {
	r.arrivals.Add(to, arrival{Sender: sender, To: to, At: r.now()})
	r.travels.Inc()
	log.Infow("traveler arrived", "sender", sender, "destination", to)
	return nil
}

func (r *ring) Snitch(_ context.Context, sender model.Identity, s contract.Snitch) error {
	if r.rejectSnitch {
		r.notifications.WithLabelValues("rejected").Inc()
		log.Warnw("notification rejected", "sender", sender, "imbiber", s.Address)
		return model.NewError(model.KindDownstreamRejected, "authority is not accepting notifications")
	}
	r.notifications.WithLabelValues("accepted").Inc()
	log.Infow("imbiber registered", "sender", sender, "imbiber", s.Address, "name", s.Name, "sapience", s.Species.SapienceLevel)
	return nil
}

// lastArrival returns the latest recorded arrival at to.
func (r *ring) lastArrival(to model.Identity) (arrival, bool) {
	return r.arrivals.Get(to)
}

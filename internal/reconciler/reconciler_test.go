//go:build unit

package reconciler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"golang-netenforce/internal/mock"
	"golang-netenforce/internal/pkg/metrics"
	"golang-netenforce/internal/policy"
	"golang-netenforce/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testIface = "Wi-Fi"
	abbPS     = types.NetworkIdentity("ABB PS PCU")
	abbSB     = types.NetworkIdentity("ABB SB PCU")
	office    = types.NetworkIdentity("Office")
)

func abbStatic() types.DesiredConfig {
	return types.DesiredConfig{
		Mode:       types.ModeStatic,
		Address:    netip.MustParseAddr("172.17.4.199"),
		SubnetMask: netip.MustParseAddr("255.255.252.0"),
		Gateway:    netip.MustParseAddr("172.17.4.31"),
		Resolver:   netip.MustParseAddr("0.0.0.0"),
	}
}

func testTable(t *testing.T) *policy.Table {
	t.Helper()
	table, err := policy.New(map[types.NetworkIdentity]types.DesiredConfig{
		abbPS:  abbStatic(),
		abbSB:  abbStatic(),
		office: {Mode: types.ModeAutomatic},
	})
	require.NoError(t, err)
	return table
}

type fixture struct {
	observer *mock.MockObserver
	enforcer *mock.MockEnforcer
	rec      *Reconciler
}

func newFixture(t *testing.T, opts ...Option) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		observer: mock.NewMockObserver(ctrl),
		enforcer: mock.NewMockEnforcer(ctrl),
	}
	f.rec = New(testIface, f.observer, f.enforcer, testTable(t), opts...)
	return f
}

func (f fixture) observe(identity types.NetworkIdentity, observed types.ObservedConfig) {
	f.observer.EXPECT().NetworkIdentity(gomock.Any()).Return(identity, nil)
	f.observer.EXPECT().AddressingState(gomock.Any(), testIface).Return(observed, nil)
}

func staticAt(addr string) types.ObservedConfig {
	return types.ObservedConfig{CurrentAddress: netip.MustParseAddr(addr)}
}

func dhcpAt(addr string) types.ObservedConfig {
	return types.ObservedConfig{DHCPEnabled: true, CurrentAddress: netip.MustParseAddr(addr)}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		identity   types.NetworkIdentity
		desired    types.DesiredConfig
		known      bool
		observed   types.ObservedConfig
		divergence types.Divergence
		action     types.Action
	}{
		{"NoNetwork", "", types.DesiredConfig{}, false, dhcpAt("10.0.0.5"),
			types.NoNetwork, types.ActionNone},
		{"UnknownOnStatic", "CoffeeShopWifi", types.DesiredConfig{}, false, staticAt("192.168.1.50"),
			types.UnknownNetwork, types.ActionEnforceAutomatic},
		{"UnknownOnDHCP", "CoffeeShopWifi", types.DesiredConfig{}, false, dhcpAt("192.168.1.50"),
			types.UnknownNetwork, types.ActionNone},
		{"AutomaticCompliant", office, types.DesiredConfig{Mode: types.ModeAutomatic}, true, dhcpAt("10.1.1.1"),
			types.CompliantAutomatic, types.ActionNone},
		{"AutomaticViolation", office, types.DesiredConfig{Mode: types.ModeAutomatic}, true, staticAt("10.1.1.1"),
			types.ViolationNeedsAutomatic, types.ActionEnforceAutomatic},
		{"StaticOnDHCP", abbPS, abbStatic(), true, dhcpAt("172.17.4.199"),
			types.ViolationNeedsStatic, types.ActionEnforceStatic},
		{"StaticWrongAddress", abbPS, abbStatic(), true, staticAt("10.0.0.5"),
			types.ViolationNeedsStatic, types.ActionEnforceStatic},
		{"StaticNoAddress", abbPS, abbStatic(), true, types.ObservedConfig{},
			types.ViolationNeedsStatic, types.ActionEnforceStatic},
		{"StaticCompliant", abbSB, abbStatic(), true, staticAt("172.17.4.199"),
			types.CompliantStatic, types.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Evaluate(tt.identity, tt.desired, tt.known, tt.observed)
			assert.Equal(t, tt.divergence, decision.Divergence)
			assert.Equal(t, tt.action, decision.Action)
			assert.Equal(t, tt.identity, decision.Identity)
			if tt.action == types.ActionEnforceStatic {
				assert.Equal(t, tt.desired, decision.Desired)
			}
			if tt.action != types.ActionNone {
				assert.NotEmpty(t, decision.Reason)
			}
		})
	}
}

func TestEvaluate_MaskAndGatewayAreNotCompared(t *testing.T) {
	desired := abbStatic()
	desired.SubnetMask = netip.MustParseAddr("255.255.255.0")
	desired.Gateway = netip.MustParseAddr("172.17.4.1")

	decision := Evaluate(abbPS, desired, true, staticAt("172.17.4.199"))
	assert.Equal(t, types.CompliantStatic, decision.Divergence)
	assert.Equal(t, types.ActionNone, decision.Action)
}

func TestReconciler_Tick_Scenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("A_StaticNetworkOnDHCP", func(t *testing.T) {
		f := newFixture(t)
		f.observe(abbPS, types.ObservedConfig{DHCPEnabled: true})
		f.enforcer.EXPECT().EnforceStatic(gomock.Any(), testIface, abbStatic()).Return(nil).Times(1)

		decision := f.rec.Tick(ctx)
		assert.Equal(t, types.ViolationNeedsStatic, decision.Divergence)
	})

	t.Run("B_StaticNetworkCompliant", func(t *testing.T) {
		f := newFixture(t)
		f.observe(abbSB, staticAt("172.17.4.199"))

		decision := f.rec.Tick(ctx)
		assert.Equal(t, types.CompliantStatic, decision.Divergence)
		assert.Equal(t, types.ActionNone, decision.Action)
	})

	t.Run("C_UnknownNetworkOnStatic", func(t *testing.T) {
		f := newFixture(t)
		f.observe("CoffeeShopWifi", staticAt("192.168.1.50"))
		f.enforcer.EXPECT().EnforceAutomatic(gomock.Any(), testIface).Return(nil).Times(1)

		decision := f.rec.Tick(ctx)
		assert.Equal(t, types.UnknownNetwork, decision.Divergence)
		assert.Equal(t, types.ActionEnforceAutomatic, decision.Action)
	})

	t.Run("D_NoNetwork", func(t *testing.T) {
		f := newFixture(t)
		f.observer.EXPECT().NetworkIdentity(gomock.Any()).Return(types.NetworkIdentity(""), nil)

		decision := f.rec.Tick(ctx)
		assert.Equal(t, types.NoNetwork, decision.Divergence)
		assert.Equal(t, types.ActionNone, decision.Action)
	})

	t.Run("E_StaticNetworkWrongAddress", func(t *testing.T) {
		f := newFixture(t)
		f.observe(abbPS, staticAt("10.0.0.5"))
		f.enforcer.EXPECT().EnforceStatic(gomock.Any(), testIface, abbStatic()).Return(nil).Times(1)

		decision := f.rec.Tick(ctx)
		assert.Equal(t, types.ViolationNeedsStatic, decision.Divergence)
		assert.Equal(t, abbStatic(), decision.Desired)
	})

	t.Run("AutomaticNetworkOnStatic", func(t *testing.T) {
		f := newFixture(t)
		f.observe(office, staticAt("172.17.4.199"))
		f.enforcer.EXPECT().EnforceAutomatic(gomock.Any(), testIface).Return(nil).Times(1)

		decision := f.rec.Tick(ctx)
		assert.Equal(t, types.ViolationNeedsAutomatic, decision.Divergence)
	})

	t.Run("UnknownNetworkOnDHCP", func(t *testing.T) {
		f := newFixture(t)
		f.observe("CoffeeShopWifi", dhcpAt("192.168.1.50"))

		decision := f.rec.Tick(ctx)
		assert.Equal(t, types.UnknownNetwork, decision.Divergence)
		assert.Equal(t, types.ActionNone, decision.Action)
	})
}

func TestReconciler_Tick_FixedPoint(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Unchanged external state: no enforcement call on any tick.
	f.observer.EXPECT().NetworkIdentity(gomock.Any()).Return(abbSB, nil).Times(5)
	f.observer.EXPECT().AddressingState(gomock.Any(), testIface).Return(staticAt("172.17.4.199"), nil).Times(5)

	for i := 0; i < 5; i++ {
		decision := f.rec.Tick(ctx)
		assert.Equal(t, types.CompliantStatic, decision.Divergence)
		assert.Equal(t, types.ActionNone, decision.Action)
	}
}

func TestReconciler_Tick_ConvergesAfterEnforcement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	gomock.InOrder(
		f.observer.EXPECT().NetworkIdentity(gomock.Any()).Return(abbPS, nil),
		f.observer.EXPECT().AddressingState(gomock.Any(), testIface).Return(dhcpAt("192.168.1.50"), nil),
		f.enforcer.EXPECT().EnforceStatic(gomock.Any(), testIface, abbStatic()).Return(nil),
		f.observer.EXPECT().NetworkIdentity(gomock.Any()).Return(abbPS, nil),
		f.observer.EXPECT().AddressingState(gomock.Any(), testIface).Return(staticAt("172.17.4.199"), nil),
	)

	assert.Equal(t, types.ViolationNeedsStatic, f.rec.Tick(ctx).Divergence)
	assert.Equal(t, types.CompliantStatic, f.rec.Tick(ctx).Divergence)
}

func TestReconciler_Tick_ObservationFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("IdentityErrorIsNoNetwork", func(t *testing.T) {
		f := newFixture(t)
		f.observer.EXPECT().NetworkIdentity(gomock.Any()).
			Return(types.NetworkIdentity(""), errors.Join(types.ErrObservation, errors.New("wlansvc stopped")))

		decision := f.rec.Tick(ctx)
		assert.Equal(t, types.NoNetwork, decision.Divergence)
		assert.Equal(t, types.ActionNone, decision.Action)
	})

	t.Run("AddressingErrorUsesDefaults", func(t *testing.T) {
		f := newFixture(t)
		f.observer.EXPECT().NetworkIdentity(gomock.Any()).Return(abbPS, nil)
		f.observer.EXPECT().AddressingState(gomock.Any(), testIface).
			Return(types.ObservedConfig{}, types.ErrObservation)
		f.enforcer.EXPECT().EnforceStatic(gomock.Any(), testIface, abbStatic()).Return(nil)

		decision := f.rec.Tick(ctx)
		assert.Equal(t, types.ObservedConfig{}, decision.Observed)
		assert.Equal(t, types.ViolationNeedsStatic, decision.Divergence)
	})
}

func TestReconciler_Tick_EnforcementFailureIsContained(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.observe("CoffeeShopWifi", staticAt("192.168.1.50"))
	f.enforcer.EXPECT().EnforceAutomatic(gomock.Any(), testIface).Return(errors.New("exit status 1")).Times(1)

	var decision types.Decision
	assert.NotPanics(t, func() { decision = f.rec.Tick(ctx) })
	assert.Equal(t, types.ActionEnforceAutomatic, decision.Action)
}

func TestReconciler_Tick_CallsAreBounded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithCallTimeout(time.Second))

	hasDeadline := func(ctx context.Context) {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
	}

	f.observer.EXPECT().NetworkIdentity(gomock.Any()).DoAndReturn(
		func(ctx context.Context) (types.NetworkIdentity, error) {
			hasDeadline(ctx)
			return abbPS, nil
		})
	f.observer.EXPECT().AddressingState(gomock.Any(), testIface).DoAndReturn(
		func(ctx context.Context, _ string) (types.ObservedConfig, error) {
			hasDeadline(ctx)
			return types.ObservedConfig{DHCPEnabled: true}, nil
		})
	f.enforcer.EXPECT().EnforceStatic(gomock.Any(), testIface, abbStatic()).DoAndReturn(
		func(ctx context.Context, _ string, _ types.DesiredConfig) error {
			hasDeadline(ctx)
			return nil
		})

	f.rec.Tick(ctx)
}

func TestReconciler_Tick_DryRun(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithDryRun(true))

	// No enforcer expectations: any call fails the test.
	f.observe(abbPS, dhcpAt("192.168.1.50"))

	decision := f.rec.Tick(ctx)
	assert.Equal(t, types.ViolationNeedsStatic, decision.Divergence)
	assert.Equal(t, types.ActionEnforceStatic, decision.Action)
}

func TestReconciler_Tick_RecordsMetrics(t *testing.T) {
	ctx := context.Background()
	m := metrics.New(metrics.Config{Enabled: true, ListenAddress: ":0", Path: "/metrics"})
	f := newFixture(t, WithMetrics(m))

	f.observe(abbPS, dhcpAt("192.168.1.50"))
	f.enforcer.EXPECT().EnforceStatic(gomock.Any(), testIface, abbStatic()).Return(errors.New("exit status 1"))
	f.rec.Tick(ctx)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `netenforce_ticks_total{divergence="violation_needs_static"} 1`)
	assert.Contains(t, body, `netenforce_enforcements_total{action="enforce_static",result="failure"} 1`)
}

func TestReconciler_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)
	ticker := mock.NewMockTicker(ctrl)

	ticks := make(chan time.Time)
	ticked := make(chan struct{}, 4)
	ticker.EXPECT().C().Return((<-chan time.Time)(ticks)).AnyTimes()

	// Every tick is followed by a ticker reset before the next wait.
	var calls []any
	for i := 0; i < 3; i++ {
		calls = append(calls,
			f.observer.EXPECT().NetworkIdentity(gomock.Any()).DoAndReturn(
				func(context.Context) (types.NetworkIdentity, error) {
					ticked <- struct{}{}
					return types.NetworkIdentity(""), nil
				}),
			ticker.EXPECT().Reset(),
		)
	}
	gomock.InOrder(calls...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- f.rec.Run(ctx, ticker) }()

	waitTick := func() {
		select {
		case <-ticked:
		case <-time.After(5 * time.Second):
			t.Fatal("tick did not happen")
		}
	}

	// First tick runs without waiting for the ticker.
	waitTick()
	ticks <- time.Now()
	waitTick()
	ticks <- time.Now()
	waitTick()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

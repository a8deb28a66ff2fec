package form_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/form"
)

func TestMasterPage_AddRequiresCodeAndName(t *testing.T) {
	d := newDesk(t)
	p := form.NewMasterPage(d.client, apiclient.Brand, d.notifier, zerolog.Nop())
	require.True(t, p.Load(ctx))

	p.SetName("   ")
	assert.False(t, p.Submit())
	assert.Equal(t, form.Message{Type: form.MessageError, Text: "Brand name is required."}, p.Message)
	assert.Equal(t, form.FieldName, p.Focus)
	assert.Nil(t, p.Pending)

	p.Code = ""
	p.SetName("Acme")
	assert.False(t, p.Submit())
	assert.Equal(t, "Brand code is required.", p.Message.Text)
	assert.Equal(t, form.FieldCode, p.Focus)

	assert.False(t, p.Confirm(ctx), "nothing pending")
	assert.Zero(t, d.counter.count(http.MethodPost))
}

func TestMasterPage_DuplicateNameRejectedLocally(t *testing.T) {
	d := newDesk(t)
	d.master(t, apiclient.Brand, "Acme")

	p := form.NewMasterPage(d.client, apiclient.Brand, d.notifier, zerolog.Nop())
	require.True(t, p.Load(ctx))
	require.Len(t, p.Records, 1)
	posts := d.counter.count(http.MethodPost)

	for _, name := range []string{"Acme", "ACME", " acme "} {
		p.SetName(name)
		assert.False(t, p.Submit())
		assert.Equal(t, form.MessageError, p.Message.Type)
		assert.Equal(t, `Brand name "Acme" already exists. Please use a different name.`, p.Message.Text)
	}

	p.Code = "0001"
	p.SetName("Zen")
	assert.False(t, p.Submit())
	assert.Equal(t, `Brand code "0001" already exists.`, p.Message.Text)
	assert.Equal(t, posts, d.counter.count(http.MethodPost))
}

func TestMasterPage_CreateReloadsAndRegeneratesCode(t *testing.T) {
	d := newDesk(t)
	p := form.NewMasterPage(d.client, apiclient.Brand, d.notifier, zerolog.Nop())
	require.True(t, p.Load(ctx))
	assert.Equal(t, "0001", p.Code)
	assert.Empty(t, p.Records)

	p.SetName("Acme")
	require.True(t, p.Submit())
	require.NotNil(t, p.Pending)
	assert.Equal(t, form.ConfirmNormal, p.Pending.Kind)
	assert.Zero(t, d.counter.count(http.MethodPost), "confirmation comes first")

	require.True(t, p.Confirm(ctx))
	assert.Equal(t, 1, d.counter.count(http.MethodPost))
	assert.Equal(t, "0002", p.Code)
	assert.Empty(t, p.Name)
	assert.Equal(t, []apiclient.Record{{Code: "0001", Name: "Acme"}}, p.Records)
	assert.Equal(t, form.MessageSuccess, p.Message.Type)
	assert.Equal(t, `Brand "Acme" created successfully.`, p.Message.Text)
	assert.Equal(t, []form.Message{p.Message}, d.notifier.msgs)
}

func TestMasterPage_EditThroughPickerAndRowClick(t *testing.T) {
	d := newDesk(t)
	d.master(t, apiclient.Category, "Vessels")
	d.master(t, apiclient.Category, "Plastics")

	p := form.NewMasterPage(d.client, apiclient.Category, d.notifier, zerolog.Nop())
	require.True(t, p.Load(ctx))

	p.SetMode(ctx, form.ModeEdit)
	assert.Empty(t, p.Code)
	require.True(t, p.Picker.IsOpen())
	require.Len(t, p.Picker.Items(), 2)
	require.True(t, p.Picker.Select(1))
	assert.Equal(t, "0002", p.Code)
	assert.Equal(t, "Plastics", p.Name)

	p.SetName("vessels")
	assert.False(t, p.Submit(), "renaming onto another record's name")

	p.SetName("Plastic Ware")
	require.True(t, p.Submit())
	require.True(t, p.Confirm(ctx))
	assert.Equal(t, "Plastic Ware", p.Records[1].Name)
	assert.Equal(t, form.ModeEdit, p.Mode)

	// clicking a row from Add mode switches to Edit
	p.SetMode(ctx, form.ModeAdd)
	p.Picker.Escape()
	require.True(t, p.Pick("0001"))
	assert.Equal(t, form.ModeEdit, p.Mode)
	assert.Equal(t, "Vessels", p.Name)
	assert.False(t, p.Pick("0042"))
}

func TestMasterPage_DeleteInUseShowsForeignKeyMessage(t *testing.T) {
	d := newDesk(t)
	unit := d.master(t, apiclient.Unit, "Nos")
	d.master(t, apiclient.Unit, "Kgs")
	_, err := d.client.CreateItem(ctx, apiclient.ItemRecord{Name: "Tumbler", GroupCode: "020301", UnitCode: unit.Code, Type: "FG"})
	require.NoError(t, err)

	p := form.NewMasterPage(d.client, apiclient.Unit, d.notifier, zerolog.Nop())
	require.True(t, p.Load(ctx))
	p.SetMode(ctx, form.ModeDelete)
	p.Picker.Escape()
	require.True(t, p.Pick(unit.Code))

	p.SetName("ignored")
	assert.Equal(t, "Nos", p.Name, "name is read-only in Delete mode")

	require.True(t, p.Submit())
	assert.Equal(t, form.ConfirmDanger, p.Pending.Kind)
	assert.False(t, p.Confirm(ctx))
	assert.Equal(t, "Cannot delete this unit: it is used in related tables.", p.Message.Text)
	assert.Len(t, p.Records, 2)

	require.True(t, p.Pick("0002"))
	require.True(t, p.Submit())
	require.True(t, p.Confirm(ctx))
	assert.Len(t, p.Records, 1)
	assert.Equal(t, `Unit "Kgs" deleted successfully.`, p.Message.Text)
	assert.Equal(t, "0002", p.Code, "next code follows the highest remaining code")
}

func TestMasterPage_CancelAndKeyboard(t *testing.T) {
	d := newDesk(t)
	p := form.NewMasterPage(d.client, apiclient.Salesman, d.notifier, zerolog.Nop())
	require.True(t, p.Load(ctx))

	p.KeyEnter(form.FieldCode)
	assert.Equal(t, form.FieldName, p.Focus)

	p.SetName("Ravi")
	p.KeyEnter(form.FieldName)
	require.NotNil(t, p.Pending, "Enter on the name submits")
	p.Cancel()
	assert.Nil(t, p.Pending)
	assert.False(t, p.Confirm(ctx))
	assert.Zero(t, d.counter.count(http.MethodPost))
}

func TestMasterPage_LoadFailure(t *testing.T) {
	p := form.NewMasterPage(offlineClient(), apiclient.Brand, nil, zerolog.Nop())
	assert.False(t, p.Load(ctx))
	assert.Equal(t, "No response received from server.", p.Message.Text)
}

// gateTransport holds POST requests until release is closed.
type gateTransport struct {
	next    http.RoundTripper
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gateTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method == http.MethodPost {
		g.once.Do(func() { close(g.entered) })
		<-g.release
	}
	return g.next.RoundTrip(req)
}

func TestMasterPage_LoadingBlocksDoubleSubmit(t *testing.T) {
	d := newDesk(t)
	gate := &gateTransport{next: d.srv.Transport(), entered: make(chan struct{}), release: make(chan struct{})}
	client := apiclient.New("http://desk.test/api", &http.Client{Transport: gate}, 0, zerolog.Nop())
	client.SetToken(d.srv.Token)

	p := form.NewMasterPage(client, apiclient.Brand, nil, zerolog.Nop())
	require.True(t, p.Load(ctx))
	p.SetName("Acme")
	require.True(t, p.Submit())

	done := make(chan bool)
	go func() { done <- p.Confirm(ctx) }()
	<-gate.entered

	assert.True(t, p.Loading())
	assert.False(t, p.Submit())
	assert.False(t, p.Confirm(ctx))

	close(gate.release)
	assert.True(t, <-done)
	assert.False(t, p.Loading())
	assert.Len(t, p.Records, 1)
}

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/jimezsa/jobflow/internal/alerts"
	"github.com/jimezsa/jobflow/internal/api"
	"github.com/jimezsa/jobflow/internal/export"
	"github.com/jimezsa/jobflow/internal/models"
	"github.com/jimezsa/jobflow/internal/results"
)

type AlertsCmd struct {
	List   ListAlertsCmd    `cmd:"" default:"1" help:"List saved alerts."`
	Create CreateAlertCmd   `cmd:"" help:"Subscribe a preference to alerts."`
	Update UpdateAlertCmd   `cmd:"" help:"Change contact, channel or frequency of an alert."`
	Delete DeleteAlertCmd   `cmd:"" help:"Delete an alert."`
	Test   SendTestAlertCmd `cmd:"" help:"Send a sample alert now."`
}

type ListAlertsCmd struct {
	OutputOptions
}

type CreateAlertCmd struct {
	PrefID    string `arg:"" name:"pref-id" help:"Preference id."`
	Contact   string `arg:"" help:"Email address or WhatsApp number."`
	Channel   string `help:"Delivery channel: EMAIL or WHATSAPP." enum:"EMAIL,WHATSAPP" default:"EMAIL"`
	Frequency string `help:"Frequency: DAILY, EVERY_3_DAYS or WEEKLY." enum:"DAILY,EVERY_3_DAYS,WEEKLY" default:"DAILY"`
}

type UpdateAlertCmd struct {
	ID        string `arg:"" help:"Alert id."`
	Contact   string `help:"New contact."`
	Channel   string `help:"New channel: EMAIL or WHATSAPP." enum:",EMAIL,WHATSAPP" default:""`
	Frequency string `help:"New frequency: DAILY, EVERY_3_DAYS or WEEKLY." enum:",DAILY,EVERY_3_DAYS,WEEKLY" default:""`
}

type DeleteAlertCmd struct {
	ID  string `arg:"" help:"Alert id."`
	Yes bool   `short:"y" help:"Delete without asking."`
}

type SendTestAlertCmd struct {
	PrefID  string `arg:"" name:"pref-id" help:"Preference id."`
	Channel string `help:"Delivery channel: EMAIL or WHATSAPP." enum:"EMAIL,WHATSAPP" default:"EMAIL"`
}

func (l *ListAlertsCmd) Run(ctx *Context) error {
	client, err := ctx.APIClient()
	if err != nil {
		return err
	}
	cctx, cancel := ctx.Signals()
	defer cancel()

	manager := alerts.NewManager(client)
	if err := manager.Load(cctx); err != nil {
		return errors.New(manager.Error())
	}

	outputPath := resolveOutputPath(l.OutputOptions)
	format, err := resolveFormat(ctx, l.OutputOptions, outputPath)
	if err != nil {
		return err
	}
	writer, closeOutput, err := openOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	defer closeOutput()

	rows := manager.Rows()
	list := make([]models.Alert, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.Alert)
	}
	return export.WriteAlerts(writer, list, format)
}

func (c *CreateAlertCmd) Run(ctx *Context) error {
	channel, err := models.ParseChannel(c.Channel)
	if err != nil {
		return err
	}
	frequency, err := models.ParseFrequency(c.Frequency)
	if err != nil {
		return err
	}
	client, err := ctx.APIClient()
	if err != nil {
		return err
	}
	cctx, cancel := ctx.Signals()
	defer cancel()

	view := results.NewView(client, c.PrefID, 0)
	form := results.AlertForm{Contact: c.Contact, Channel: channel, Frequency: frequency}
	if err := view.SaveAlert(cctx, form); err != nil {
		ctx.Logger.Debug().Err(err).Msg("save alert")
		return errors.New(view.Snapshot(time.Now()).Alert.Error)
	}
	ctx.UI.Successf("%s", view.Snapshot(time.Now()).Alert.Confirmation)
	return nil
}

func (u *UpdateAlertCmd) Run(ctx *Context) error {
	client, err := ctx.APIClient()
	if err != nil {
		return err
	}
	cctx, cancel := ctx.Signals()
	defer cancel()

	manager := alerts.NewManager(client)
	if err := manager.Load(cctx); err != nil {
		return errors.New(manager.Error())
	}
	if err := manager.BeginEdit(u.ID); err != nil {
		if errors.Is(err, alerts.ErrNotFound) {
			return fmt.Errorf("alert %s not found", u.ID)
		}
		return err
	}

	draft, err := u.draft(manager.Rows())
	if err != nil {
		return err
	}
	if err := manager.SetDraft(u.ID, draft); err != nil {
		return err
	}
	if err := manager.Save(cctx, u.ID); err != nil {
		ctx.Logger.Debug().Err(err).Msg("update alert")
		if msg := manager.RowError(u.ID); msg != "" {
			return fmt.Errorf("%s: %s", msg, api.Message(err, "unknown error"))
		}
		ctx.UI.Warnf("Alert updated, but the list could not be reloaded: %s", manager.Error())
		return nil
	}
	ctx.UI.Successf("Alert %s updated.", u.ID)
	return nil
}

// draft starts from the current values of the alert and applies the flags
// that were set.
func (u *UpdateAlertCmd) draft(rows []alerts.Row) (alerts.Draft, error) {
	var draft alerts.Draft
	for _, row := range rows {
		if row.ID == u.ID {
			draft = row.Draft
		}
	}
	if u.Contact != "" {
		draft.Contact = u.Contact
	}
	if u.Channel != "" {
		channel, err := models.ParseChannel(u.Channel)
		if err != nil {
			return draft, err
		}
		draft.Channel = channel
	}
	if u.Frequency != "" {
		frequency, err := models.ParseFrequency(u.Frequency)
		if err != nil {
			return draft, err
		}
		draft.Frequency = frequency
	}
	form := results.AlertForm{Contact: draft.Contact, Channel: draft.Channel, Frequency: draft.Frequency}
	if err := form.Validate(); err != nil {
		return draft, err
	}
	return draft, nil
}

func (d *DeleteAlertCmd) Run(ctx *Context) error {
	confirmed := d.Yes || ctx.UI.Confirm(fmt.Sprintf("Delete alert %s?", d.ID))
	if !confirmed {
		ctx.UI.Infof("Cancelled.")
		return nil
	}

	client, err := ctx.APIClient()
	if err != nil {
		return err
	}
	cctx, cancel := ctx.Signals()
	defer cancel()

	manager := alerts.NewManager(client)
	if err := manager.Delete(cctx, d.ID, confirmed); err != nil {
		if msg := manager.RowError(d.ID); msg != "" {
			return fmt.Errorf("%s: %s", msg, api.Message(err, "unknown error"))
		}
		ctx.Logger.Debug().Err(err).Msg("reload alerts after delete")
	}
	ctx.UI.Successf("Alert %s deleted.", d.ID)
	return nil
}

func (s *SendTestAlertCmd) Run(ctx *Context) error {
	channel, err := models.ParseChannel(s.Channel)
	if err != nil {
		return err
	}
	client, err := ctx.APIClient()
	if err != nil {
		return err
	}
	cctx, cancel := ctx.Signals()
	defer cancel()

	view := results.NewView(client, s.PrefID, 0)
	if err := view.SendTestAlert(cctx, channel); err != nil {
		return errors.New(view.Snapshot(time.Now()).Alert.Error)
	}
	_, err = fmt.Fprintln(ctx.Out, view.Snapshot(time.Now()).Alert.TestMessage)
	return err
}

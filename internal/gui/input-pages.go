package gui

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"entgo.io/ent/dialect"
	"github.com/FlagBrew/local-teambuilder/internal/models"
	"github.com/gdamore/tcell/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/rivo/tview"
	_ "modernc.org/sqlite"
)

var blackListedChars = []rune{
	'\'', '$', '%', '@', '#', '!', ';', ':', '/', '*', '?', '|', '>', '<', '&', '\\',
}

const formHelp = "[red]ESC - exit[-:-:-:-] [yellow] Enter - next input/submit [orange] (Shift+)Tab - switch inputs"

func portAcceptance(textToCheck string, lastChar rune) bool {
	if !unicode.IsDigit(lastChar) {
		return false
	}

	// Make sure the port is between 1 and 65535
	num, _ := strconv.Atoi(textToCheck)

	return num > 0 && num <= 65535
}

// pingDatabase makes sure the database behind connectionString is reachable.
func pingDatabase(database, connectionString string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if database == "postgres" {
		conn, err := pgx.Connect(ctx, connectionString)
		if err != nil {
			return err
		}
		defer conn.Close(context.Background())
		return conn.Ping(ctx)
	}

	driver := "sqlite"
	if database == "mysql" {
		driver = dialect.MySQL
	}

	db, err := sql.Open(driver, connectionString)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.PingContext(ctx)
}

func (g *Gui) databaseConfigPage(p *tview.Pages, database string) tview.Primitive {
	form := tview.NewForm()

	fieldNames := connectionFields(database)
	values := parseConnectionString(database, g.config.Database.ConnectionString)

	switch database {
	case "sqlite":
		form.AddInputField(fieldNames[0], values[0], 30, func(textToCheck string, lastChar rune) bool {
			return !slices.Contains(blackListedChars, lastChar)
		}, func(text string) {
			values[0] = text
		})
	case "mysql", "postgres":
		form.AddInputField(fieldNames[0], values[0], 20, nil, func(text string) {
			values[0] = text
		})
		form.AddPasswordField(fieldNames[1], values[1], 20, '*', func(text string) {
			values[1] = text
		})
		form.AddInputField(fieldNames[2], values[2], 20, nil, func(text string) {
			values[2] = text
		})
		form.AddInputField(fieldNames[3], values[3], 20, portAcceptance, func(text string) {
			values[3] = text
		})
		form.AddInputField(fieldNames[4], values[4], 20, nil, func(text string) {
			values[4] = text
		})
	}

	frame := tview.NewFrame(form)
	frame.SetBorder(true)
	frame.SetTitle(fmt.Sprintf("Local Team Builder - Configuring Database: %s", database))

	drawHelp := func() {
		frame.Clear()
		frame.AddText("Please fill out the form below, with the information (if you are unsure, check the wiki)", true, tview.AlignLeft, tcell.ColorYellow)
		frame.AddText(formHelp, false, tview.AlignLeft, tcell.ColorYellow)
	}
	drawHelp()

	form.AddButton("Submit", func() {
		drawHelp()

		connectionString, err := buildConnectionString(database, values)
		if err == nil && database == "sqlite" {
			if _, statErr := os.Stat(values[0]); statErr != nil && !os.IsNotExist(statErr) {
				err = fmt.Errorf("File Name: an unknown error occurred, please check your input")
			}
		}
		if err == nil {
			if pingErr := pingDatabase(database, connectionString); pingErr != nil {
				err = fmt.Errorf("%s connection error: %w", database, pingErr)
			}
		}

		if err != nil {
			frame.AddText("Errors: ", true, tview.AlignLeft, tcell.ColorYellow)
			for _, line := range strings.Split(err.Error(), "\n") {
				frame.AddText(line, true, tview.AlignLeft, tcell.ColorRed)
			}
			return
		}

		g.config.Database = models.DatabaseConfig{
			DBType:           database,
			ConnectionString: connectionString,
		}

		p.AddPage("seed-import", g.seedSelection(p), true, false)
		p.SwitchToPage("seed-import")
	})

	return frame
}

func (g *Gui) seedConfigPage(p *tview.Pages) tview.Primitive {
	form := tview.NewForm()
	frame := tview.NewFrame(form)
	frame.SetBorder(true)
	frame.SetTitle("Local Team Builder - Seed Catalog Location")

	source := g.config.Misc.SeedCatalog
	if source == "" {
		source = "catalog.json"
	}

	drawHelp := func() {
		frame.Clear()
		frame.AddText("Enter a file path or an http(s) URL pointing at the catalog to import", true, tview.AlignLeft, tcell.ColorYellow)
		frame.AddText(formHelp, false, tview.AlignLeft, tcell.ColorYellow)
	}
	drawHelp()

	form.AddInputField("Catalog", source, 50, nil, func(text string) {
		source = strings.TrimSpace(text)
	})
	form.AddButton("Submit", func() {
		drawHelp()

		isURL := strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
		var problem string
		switch {
		case source == "":
			problem = "Catalog: is required"
		case !isURL:
			if _, err := os.Stat(source); err != nil {
				problem = "Catalog: " + err.Error()
			}
		}

		if problem != "" {
			frame.AddText("Errors: ", true, tview.AlignLeft, tcell.ColorYellow)
			frame.AddText(problem, true, tview.AlignLeft, tcell.ColorRed)
			return
		}

		g.config.Misc.SeedCatalog = source
		p.AddPage("http-config", g.httpConfigPage(p), true, false)
		p.SwitchToPage("http-config")
	})

	return frame
}

func (g *Gui) httpConfigPage(p *tview.Pages) tview.Primitive {
	form := tview.NewForm()
	frame := tview.NewFrame(form)

	chosenAddr := "0.0.0.0"
	chosenPort := "8080"
	chosenLimit := "120"

	if g.config.HTTP.ListeningAddr != "" {
		chosenAddr = g.config.HTTP.ListeningAddr
	}

	if g.config.HTTP.Port != 0 {
		chosenPort = strconv.Itoa(g.config.HTTP.Port)
	}

	if g.config.HTTP.WriteLimit != 0 {
		chosenLimit = strconv.Itoa(g.config.HTTP.WriteLimit)
	}

	defaultFrameDraw := func() {
		frame.Clear()
		frame.AddText("Please fill out the form below, with the information (if you are unsure, check the wiki)", true, tview.AlignLeft, tcell.ColorYellow)
		frame.AddText(formHelp, false, tview.AlignLeft, tcell.ColorYellow)
		if chosenAddr == "127.0.0.1" || chosenAddr == "localhost" || chosenAddr == "::1" {
			frame.AddText(fmt.Sprintf("Using %s (localhost) means only this machine can reach the team builder API", chosenAddr), true, tview.AlignLeft, tcell.ColorRed)
		}
	}

	defaultFrameDraw()
	availableAddresses := []string{"0.0.0.0"}

	ipHelpText := `
When selecting the listening address, 0.0.0.0 will have Local Team Builder listen on all IP addresses bound to your computer.
That is what you want if other machines should build teams against this catalog.
`

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		ipHelpText = fmt.Sprintf(`Due to an error, the application couldn't list the IPs assigned to your machine, as such it will fallback to using 0.0.0.0 (listening on all interfaces)
Error info: %s
`, err.Error())
	} else {
		for _, address := range addrs {
			if strings.HasPrefix(address.String(), "fe80") {
				continue
			}
			availableAddresses = append(availableAddresses, strings.Split(address.String(), "/")[0])
		}
	}

	index := slices.Index(availableAddresses, chosenAddr)
	if index == -1 {
		index = 0
	}

	form.AddTextView("IP Info", ipHelpText, 0, 0, true, true)
	form.AddDropDown("Listening Address", availableAddresses, index, func(option string, optionIndex int) {
		chosenAddr = availableAddresses[optionIndex]
		defaultFrameDraw()
	})
	form.AddInputField("Port", chosenPort, 20, portAcceptance, func(text string) {
		chosenPort = text
	})
	form.AddInputField("Writes per minute (per IP, 0 = unlimited)", chosenLimit, 20, tview.InputFieldInteger, func(text string) {
		chosenLimit = text
	})

	form.AddButton("Submit", func() {
		defaultFrameDraw()
		errors := []string{}
		if chosenPort == "" {
			errors = append(errors, "Port: Please enter a valid port number")
		}

		limit, err := strconv.Atoi(chosenLimit)
		if err != nil || limit < 0 {
			errors = append(errors, "Writes per minute: Please enter a positive number or 0")
		}

		if len(errors) == 0 {
			l, err := net.Listen("tcp", net.JoinHostPort(chosenAddr, chosenPort))
			if err != nil {
				errors = append(errors, err.Error())
			} else {
				l.Close()
			}
		}

		if len(errors) > 0 {
			frame.AddText("Errors: ", true, tview.AlignLeft, tcell.ColorYellow)
			for _, v := range errors {
				frame.AddText(v, true, tview.AlignLeft, tcell.ColorRed)
			}
			return
		}

		port, _ := strconv.Atoi(chosenPort)
		g.config.HTTP = models.HTTPConfig{
			ListeningAddr: chosenAddr,
			Port:          port,
			WriteLimit:    limit,
		}

		p.SwitchToPage("display-config")
	})

	frame.SetBorder(true)
	frame.SetTitle("Local Team Builder - Configuring HTTP")

	return frame
}

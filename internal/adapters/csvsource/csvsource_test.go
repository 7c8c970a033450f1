package csvsource_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/okian/circuito/internal/adapters/csvsource"
	"github.com/okian/circuito/internal/domain/ranking"
	"github.com/okian/circuito/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const scenarioA = "Ano;Segmento;Pessoa;Pontuacao\n" +
	"2024;Geral;Ana;95.5\n" +
	"2024;Geral;Bruno;80\n" +
	"2023;Geral;Carla;99\n"

func TestParse(t *testing.T) {
	Convey("Given the scenario A csv", t, func() {
		ds := csvsource.Parse(scenarioA)

		Convey("Then every data row becomes a record keyed by header", func() {
			So(len(ds), ShouldEqual, 3)
			So(ds[0], ShouldResemble, ranking.Record{"Ano": "2024", "Segmento": "Geral", "Pessoa": "Ana", "Pontuacao": "95.5"})
			So(ds[2].Person(), ShouldEqual, "Carla")
		})

		Convey("And the ranking queries produce the expected view", func() {
			So(ranking.UniqueYears(ds), ShouldResemble, []int{2024, 2023})

			view := ranking.SortByScoreDescending(ranking.FilterByYearAndCategory(ds, "2024", "Geral"))
			So(len(view), ShouldEqual, 2)
			So(view[0].Person(), ShouldEqual, "Ana")
			So(ranking.FormatScore(view[0].Score()), ShouldEqual, "95.50")
			So(view[1].Person(), ShouldEqual, "Bruno")
			So(ranking.FormatScore(view[1].Score()), ShouldEqual, "80.00")
		})
	})

	Convey("Given CRLF line endings, padding and blank lines", t, func() {
		raw := "Ano;Segmento;Pessoa;Pontuacao\r\n\r\n  2024;Geral;Ana;95.5  \r\n\n2024;Geral;Bruno;80\r\n"
		ds := csvsource.Parse(raw)

		Convey("Then blank lines are dropped and lines trimmed", func() {
			So(len(ds), ShouldEqual, 2)
			So(ds[0].Year(), ShouldEqual, "2024")
			So(ds[0].Score(), ShouldEqual, "95.5")
			So(ds[1].Score(), ShouldEqual, "80")
		})
	})

	Convey("Given rows shorter and longer than the header", t, func() {
		raw := "Ano;Segmento;Pessoa;Pontuacao\n2024;Geral\n2024;Geral;Ana;90;extra;fields\n"
		ds := csvsource.Parse(raw)

		Convey("Then missing fields default to empty", func() {
			So(ds[0].Person(), ShouldEqual, "")
			So(ds[0].Score(), ShouldEqual, "")
			So(len(ds[0]), ShouldEqual, 4)
		})

		Convey("And extra fields are ignored", func() {
			So(len(ds[1]), ShouldEqual, 4)
			So(ds[1].Score(), ShouldEqual, "90")
		})
	})

	Convey("Given a header-only or empty body", t, func() {
		Convey("Then the dataset is empty", func() {
			So(csvsource.Parse("Ano;Segmento;Pessoa;Pontuacao\n"), ShouldBeEmpty)
			So(csvsource.Parse(""), ShouldBeEmpty)
			So(csvsource.Parse("\r\n \n"), ShouldBeEmpty)
		})
	})

	Convey("Given well-formed csv text", t, func() {
		header := []string{"Ano", "Segmento", "Pessoa", "Pontuacao"}
		rows := [][]string{
			{"2024", "Mestre das Belgas", "Dora", "71.25"},
			{"2023", "Geral", "Édson", ""},
		}
		lines := []string{strings.Join(header, ";")}
		for _, r := range rows {
			lines = append(lines, strings.Join(r, ";"))
		}
		ds := csvsource.Parse(strings.Join(lines, "\n"))

		Convey("Then re-serializing the columns reproduces the fields", func() {
			So(len(ds), ShouldEqual, len(rows))
			for i, r := range ds {
				out := make([]string, len(header))
				for j, col := range header {
					out[j] = r[col]
				}
				So(out, ShouldResemble, rows[i])
			}
		})
	})
}

func TestFileFetcher(t *testing.T) {
	Convey("Given a data directory", t, func() {
		fsys := fstest.MapFS{
			"data/ranking.csv": &fstest.MapFile{Data: []byte("\xEF\xBB\xBF" + scenarioA)},
			"data/latin1.csv":  &fstest.MapFile{Data: []byte("Ano;Segmento;Pessoa;Pontuacao\n2024;Mestre das Alem\xe3s;Jo\xe3o;88\n")},
			"data/empty.csv":   &fstest.MapFile{Data: []byte("Ano;Segmento;Pessoa;Pontuacao\n")},
		}
		fetcher := csvsource.NewFileFetcher(fsys)
		ctx := context.Background()

		Convey("When loading an existing file with a BOM", func() {
			loader, err := csvsource.NewLoader(fetcher, "data/ranking.csv")
			So(err, ShouldBeNil)
			ds, err := loader.Load(ctx)

			Convey("Then the header is read without the BOM", func() {
				So(err, ShouldBeNil)
				So(len(ds), ShouldEqual, 3)
				So(ds[0].Year(), ShouldEqual, "2024")
			})
		})

		Convey("When loading a Latin-1 file", func() {
			loader, err := csvsource.NewLoader(fetcher, "data/latin1.csv", csvsource.WithEncoding("iso-8859-1"))
			So(err, ShouldBeNil)
			ds, err := loader.Load(ctx)

			Convey("Then accents are decoded to UTF-8", func() {
				So(err, ShouldBeNil)
				So(ds[0].Category(), ShouldEqual, "Mestre das Alemãs")
				So(ds[0].Person(), ShouldEqual, "João")
			})
		})

		Convey("When loading a header-only file", func() {
			loader, _ := csvsource.NewLoader(fetcher, "data/empty.csv")
			ds, err := loader.Load(ctx)

			Convey("Then the dataset is empty without error", func() {
				So(err, ShouldBeNil)
				So(ds, ShouldBeEmpty)
			})
		})

		Convey("When the file is missing", func() {
			loader, _ := csvsource.NewLoader(fetcher, "data/missing.csv")
			_, err := loader.Load(ctx)

			Convey("Then a fetch error is returned", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, csvsource.ErrFetch), ShouldBeTrue)
				So(csvsource.IsFetchError(err), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "data/missing.csv")
			})
		})

		Convey("When the encoding is unknown", func() {
			_, err := csvsource.NewLoader(fetcher, "data/ranking.csv", csvsource.WithEncoding("ebcdic"))

			Convey("Then the loader cannot be built", func() {
				So(errors.Is(err, csvsource.ErrEncoding), ShouldBeTrue)
			})
		})
	})
}

func TestHTTPFetcher(t *testing.T) {
	Convey("Given an HTTP origin", t, func() {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			switch r.URL.Path {
			case "/site/data/ranking.csv":
				_, _ = w.Write([]byte(scenarioA))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		fetcher, err := csvsource.NewHTTPFetcher(srv.URL+"/site", time.Second)
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When the resource exists", func() {
			loader, _ := csvsource.NewLoader(fetcher, "data/ranking.csv")
			ds, err := loader.Load(ctx)

			Convey("Then it is fetched and parsed", func() {
				So(err, ShouldBeNil)
				So(len(ds), ShouldEqual, 3)
			})

			Convey("And every load goes back to the origin", func() {
				_, err := loader.Load(ctx)
				So(err, ShouldBeNil)
				So(calls, ShouldEqual, 2)
			})
		})

		Convey("When the origin answers 404", func() {
			loader, _ := csvsource.NewLoader(fetcher, "data/other.csv")
			_, err := loader.Load(ctx)

			Convey("Then the status is reported", func() {
				var fe *csvsource.FetchError
				So(errors.As(err, &fe), ShouldBeTrue)
				So(fe.StatusCode, ShouldEqual, http.StatusNotFound)
				So(errors.Is(err, csvsource.ErrFetch), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := fetcher.Fetch(cctx, "data/ranking.csv")

			Convey("Then the fetch fails", func() {
				So(errors.Is(err, csvsource.ErrFetch), ShouldBeTrue)
			})
		})
	})

	Convey("Given an invalid base URL", t, func() {
		_, err := csvsource.NewHTTPFetcher("ftp://example.com", time.Second)

		Convey("Then it is rejected", func() {
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given NewFetcher", t, func() {
		Convey("Then a base URL selects HTTP", func() {
			f, err := csvsource.NewFetcher("http://localhost:1", "", time.Second)
			So(err, ShouldBeNil)
			_, ok := f.(*csvsource.HTTPFetcher)
			So(ok, ShouldBeTrue)
		})

		Convey("And no base URL selects the filesystem", func() {
			f, err := csvsource.NewFetcher("", t.TempDir(), time.Second)
			So(err, ShouldBeNil)
			_, ok := f.(*csvsource.FileFetcher)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestLoaderLog(t *testing.T) {
	Convey("Given a loader logging at debug level", t, func() {
		var buf bytes.Buffer
		So(logger.Init(logger.WithFormat(logger.FormatJSON), logger.WithOutput(&buf)), ShouldBeNil)
		So(logger.SetLevelString("debug"), ShouldBeNil)
		Reset(func() {
			_ = logger.Init()
			_ = logger.SetLevelString("info")
		})

		fetcher := csvsource.NewFileFetcher(fstest.MapFS{
			"data/latin1.csv": {Data: []byte("Ano;Segmento;Pessoa;Pontuacao\n2024;Geral;F\xe1bio;70\n")},
		})
		loader, err := csvsource.NewLoader(fetcher, "data/latin1.csv", csvsource.WithEncoding("iso-8859-1"))
		So(err, ShouldBeNil)

		Convey("When the csv loads", func() {
			ds, err := loader.Load(context.Background())

			Convey("Then the log line carries the decoding flag and latency", func() {
				So(err, ShouldBeNil)
				So(ds[0].Person(), ShouldEqual, "Fábio")

				var line map[string]any
				So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
				So(line["msg"], ShouldEqual, "ranking csv loaded")
				So(line["transcoded"], ShouldEqual, true)
				elapsed, ok := line["elapsed_ms"].(float64)
				So(ok, ShouldBeTrue)
				So(elapsed, ShouldBeGreaterThanOrEqualTo, 0)
			})
		})
	})
}

package catalog

import "path/filepath"

// DefaultRoot is the directory all default datasets live under.
const DefaultRoot = "datasets"

// Default returns the built-in catalog rooted at root. Open datasets come
// first, then each gated family.
func Default(root string) Catalog {
	movielens := filepath.Join(root, "MovieLens")
	netflix := filepath.Join(root, "Netflix")

	return Catalog{
		{
			Name:      "MovieLens 1M",
			Family:    "MovieLens",
			Kind:      KindOpen,
			Source:    "https://files.grouplens.org/datasets/movielens/ml-1m.zip",
			Dest:      filepath.Join(movielens, "ml-1m"),
			Archive:   "ml-1m.zip",
			ExtractTo: movielens,
			Marker:    filepath.Join(movielens, "ml-1m", "ratings.dat"),
		},
		{
			Name:      "MovieLens 25M",
			Family:    "MovieLens",
			Kind:      KindOpen,
			Source:    "https://files.grouplens.org/datasets/movielens/ml-25m.zip",
			Dest:      filepath.Join(movielens, "ml-25m"),
			Archive:   "ml-25m.zip",
			ExtractTo: movielens,
			Marker:    filepath.Join(movielens, "ml-25m", "ratings.csv"),
		},
		{
			Name:    "Netflix Shows",
			Family:  "Netflix",
			Kind:    KindGated,
			Source:  "shivamb/netflix-shows",
			Dest:    filepath.Join(netflix, "netflix"),
			Marker:  filepath.Join(netflix, "netflix", "netflix_titles.csv"),
			Extract: "netflix_titles.csv",
		},
		{
			Name:    "Netflix Prize",
			Family:  "Netflix",
			Kind:    KindGated,
			Source:  "netflix-inc/netflix-prize-data",
			Dest:    filepath.Join(netflix, "netflix_prize"),
			Marker:  filepath.Join(netflix, "netflix_prize"),
			Extract: "all files",
		},
		{
			Name:    "TMDB Movies",
			Family:  "TMDB",
			Kind:    KindGated,
			Source:  "asaniczka/tmdb-movies-dataset-2023-930k-movies",
			Dest:    filepath.Join(root, "TMDB"),
			Marker:  filepath.Join(root, "TMDB", "TMDB_movie_dataset_v11.csv"),
			Extract: "TMDB_movie_dataset_v11.csv",
		},
		{
			Name:    "MyAnimeList",
			Family:  "MyAnimeList",
			Kind:    KindGated,
			Source:  "hernan4444/anime-recommendation-database-2020",
			Dest:    filepath.Join(root, "anime"),
			Marker:  filepath.Join(root, "anime", "anime.csv"),
			Extract: "all CSV files",
		},
	}
}

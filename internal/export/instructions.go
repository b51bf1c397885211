package export

import "os"

// NewsInstructions is the fixed readme text for the manually downloaded news dataset.
const NewsInstructions = `
    Financial News Data - Manual Download Required
    ===============================================

    This project requires a financial news dataset from Kaggle.
    Due to Kaggle's terms of service, this file cannot be automatically downloaded by the script.

    Instructions:
    1. Go to the following URL: https://www.kaggle.com/datasets/miguelaenlle/financial-news-for-stock-market-prediction
    2. Click the "Download" button. You may need to create a free Kaggle account.
    3. Unzip the downloaded file. You will find a file named 'all-data.csv'.
    4. RENAME 'all-data.csv' to 'news_data.csv'.
    5. PLACE the 'news_data.csv' file inside the 'data/raw/' directory, right next to this README.

    Once 'news_data.csv' is in place, you can proceed with the next steps of the project.
` + "    "

// WriteNewsInstructions overwrites path with NewsInstructions.
func WriteNewsInstructions(path string) error {
	return os.WriteFile(path, []byte(NewsInstructions), 0644)
}
